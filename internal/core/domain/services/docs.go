// Package services provides domain services that span several aggregates.
//
// The package includes:
//   - KitchenDispatcher: splits an order into per-department kitchen tickets
//   - NotificationComposer: maps a status change to a customer notification request
package services
