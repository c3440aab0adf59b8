// Package notification describes customer notifications: the transient Request
// produced for a status change, the channels it is delivered on and the
// template Renderer that turns typed variables into message text.
package notification
