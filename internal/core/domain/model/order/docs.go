// Package order contains the Order aggregate and its lifecycle: pendiente →
// confirmado → procesando → enviado → entregado, with cancelado reachable
// until delivery. entregado and cancelado are terminal; any further mutation
// fails with InvalidState.
package order
