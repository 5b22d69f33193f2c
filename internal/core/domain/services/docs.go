// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fulfillment system. It
// implements workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - WorkloadDispatcher: balanced assignment of order preparations to warehouse operators
//   - NumberSequence: human-facing quote/order sequence numbers with collision retry
//   - access control: the static role→permission table consumed by the use cases
package services
