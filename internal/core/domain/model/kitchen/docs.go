// Package kitchen models the kitchen tickets a department receives when an
// order enters preparation.
//
// A Ticket groups the order lines that belong to one department. Items progress
// individually and the ticket status follows them: a ticket is READY when every
// item that was not cancelled is READY.
package kitchen
