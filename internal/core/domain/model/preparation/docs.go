// Package preparation contains the warehouse-side tracker for an order's
// picking work: assignment to an operator, per-line progress, and the final
// carrier hand-off.
package preparation
