package quote

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a quote. Values are wire-level strings
// shared with the storefront and must be preserved verbatim.
type Status string

const (
	// StatusPendiente is the initial state of a newly requested quote.
	StatusPendiente Status = "pendiente"
	// StatusEnRevisionVendedor marks a quote the sales representative has started reviewing.
	StatusEnRevisionVendedor Status = "en_revision_vendedor"
	// StatusAprobadoVendedor marks first-stage approval by the sales representative.
	StatusAprobadoVendedor Status = "aprobado_vendedor"
	// StatusRechazadoVendedor marks first-stage rejection by the sales representative.
	StatusRechazadoVendedor Status = "rechazado_vendedor"
	// StatusEnRevisionAdmin marks a quote under second-stage administrator review.
	StatusEnRevisionAdmin Status = "en_revision_admin"
	// StatusAprobado marks final approval; the quote is eligible for conversion.
	StatusAprobado Status = "aprobado"
	// StatusRechazado marks final rejection by an administrator.
	StatusRechazado Status = "rechazado"
	// StatusConvertida marks a quote that has been turned into an order.
	StatusConvertida Status = "convertida"
	// StatusVencida marks a quote whose validity window elapsed before conversion.
	StatusVencida Status = "vencida"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPendiente:          {},
		StatusEnRevisionVendedor: {},
		StatusAprobadoVendedor:   {},
		StatusRechazadoVendedor:  {},
		StatusEnRevisionAdmin:    {},
		StatusAprobado:           {},
		StatusRechazado:          {},
		StatusConvertida:         {},
		StatusVencida:            {},
	}
}

// Validate checks that the status is one of the known wire-level values.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid quote status", string(s)))
	}
	return nil
}

// String returns the wire-level representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further review transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusRechazadoVendedor || s == StatusRechazado ||
		s == StatusConvertida || s == StatusVencida
}

// VendorReview transitions the quote through first-stage review. Allowed only
// from pendiente or en_revision_vendedor.
func (s Status) VendorReview(approved bool) (Status, error) {
	if s != StatusPendiente && s != StatusEnRevisionVendedor {
		return s, errs.NewInvalidStateError("quote", string(s))
	}
	if approved {
		return StatusAprobadoVendedor, nil
	}
	return StatusRechazadoVendedor, nil
}

// AdminReview transitions the quote through second-stage review. Allowed only
// from aprobado_vendedor or en_revision_admin.
func (s Status) AdminReview(approved bool) (Status, error) {
	if s != StatusAprobadoVendedor && s != StatusEnRevisionAdmin {
		return s, errs.NewInvalidStateError("quote", string(s))
	}
	if approved {
		return StatusAprobado, nil
	}
	return StatusRechazado, nil
}

// Convert transitions a fully approved quote to convertida.
func (s Status) Convert() (Status, error) {
	if s != StatusAprobado {
		return s, errs.NewInvalidStateError("quote", string(s))
	}
	return StatusConvertida, nil
}

// Expire transitions a quote to vencida. Terminal quotes cannot expire.
func (s Status) Expire() (Status, error) {
	if s.IsTerminal() {
		return s, errs.NewInvalidStateError("quote", string(s))
	}
	return StatusVencida, nil
}
