// Package quote contains the Quote aggregate: a customer request that moves
// through two review stages (sales representative, then administrator) before
// it can be converted into an order exactly once.
//
// Status values are wire-level Spanish strings preserved verbatim; all
// transition rules live on the Status type and the aggregate methods that
// apply them.
package quote
