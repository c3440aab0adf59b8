// Package dispatch keeps track of side effects of committed order transitions
// (kitchen ticket creation, customer notification) that failed and wait for a retry.
package dispatch
