// Package order holds the Order aggregate and the status state machine that
// guards its lifecycle.
//
// The package includes:
//   - Order: aggregate root owning lines, contact data, priority and status
//   - Status: the lifecycle states and the transition table (CanTransition)
//   - Line, Contact, Type, Priority and StatusChange value types
//
// Lifecycle:
//
//	RECEIVED -> CONFIRMED -> PREPARING -> READY -> SERVED
//
// with CANCELLED reachable from RECEIVED, CONFIRMED and PREPARING. A rejected
// transition is reported as *InvalidTransitionError and leaves the order unchanged.
package order
