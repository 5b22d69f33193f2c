package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Values are wire-level strings
// shared with the storefront and must be preserved verbatim.
type Status string

const (
	// StatusPendiente is the initial state of a newly placed order.
	StatusPendiente Status = "pendiente"
	// StatusConfirmado marks an order accepted for fulfillment.
	StatusConfirmado Status = "confirmado"
	// StatusProcesando marks an order being prepared in the warehouse.
	StatusProcesando Status = "procesando"
	// StatusEnviado marks an order handed to the carrier.
	StatusEnviado Status = "enviado"
	// StatusEntregado marks a delivered order; terminal.
	StatusEntregado Status = "entregado"
	// StatusCancelado marks a cancelled order; terminal.
	StatusCancelado Status = "cancelado"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPendiente:  {},
		StatusConfirmado: {},
		StatusProcesando: {},
		StatusEnviado:    {},
		StatusEntregado:  {},
		StatusCancelado:  {},
	}
}

// Validate checks that the status is one of the known wire-level values.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String returns the wire-level representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the order can no longer be mutated.
func (s Status) IsTerminal() bool {
	return s == StatusEntregado || s == StatusCancelado
}

// CanPrepare reports whether a warehouse preparation may be opened.
func (s Status) CanPrepare() bool {
	return s == StatusConfirmado || s == StatusProcesando
}

// PaymentStatus tracks how much of the order has been paid.
type PaymentStatus string

const (
	PaymentPendiente   PaymentStatus = "pendiente"
	PaymentParcial     PaymentStatus = "parcial"
	PaymentPagado      PaymentStatus = "pagado"
	PaymentReembolsado PaymentStatus = "reembolsado"
)

// Validate checks that the payment status is one of the known wire-level values.
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPendiente, PaymentParcial, PaymentPagado, PaymentReembolsado:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", string(p)))
}

// String returns the wire-level representation of the payment status.
func (p PaymentStatus) String() string {
	return string(p)
}

// PaymentMethod is the agreed settlement method for an order.
type PaymentMethod string

const (
	MethodTransferencia PaymentMethod = "transferencia"
	MethodEfectivo      PaymentMethod = "efectivo"
	MethodCheque        PaymentMethod = "cheque"
	MethodTarjeta       PaymentMethod = "tarjeta"
	MethodCredito30     PaymentMethod = "credito_30"
	MethodCredito60     PaymentMethod = "credito_60"
	MethodCredito90     PaymentMethod = "credito_90"
)

// Validate checks that the payment method is one of the known wire-level
// values. An empty method is allowed; settlement terms may be agreed later.
func (m PaymentMethod) Validate() error {
	switch m {
	case "", MethodTransferencia, MethodEfectivo, MethodCheque, MethodTarjeta,
		MethodCredito30, MethodCredito60, MethodCredito90:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", string(m)))
}

// String returns the wire-level representation of the payment method.
func (m PaymentMethod) String() string {
	return string(m)
}
