package preparation

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a warehouse preparation. Values are
// wire-level strings preserved verbatim.
type Status string

const (
	// StatusPendiente marks a preparation created without an operator, awaiting assignment.
	StatusPendiente Status = "pendiente"
	// StatusAsignado marks a preparation assigned to an operator who has not started.
	StatusAsignado Status = "asignado"
	// StatusEnPreparacion marks a preparation with recorded picking progress.
	StatusEnPreparacion Status = "en_preparacion"
	// StatusPreparado marks a fully picked preparation ready to dispatch.
	StatusPreparado Status = "preparado"
	// StatusDespachado marks a dispatched preparation; terminal.
	StatusDespachado Status = "despachado"
)

// Validate checks that the status is one of the known wire-level values.
func (s Status) Validate() error {
	switch s {
	case StatusPendiente, StatusAsignado, StatusEnPreparacion, StatusPreparado, StatusDespachado:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid preparation status", string(s)))
}

// String returns the wire-level representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsActive reports whether the preparation still contributes to its
// operator's workload.
func (s Status) IsActive() bool {
	return s == StatusPendiente || s == StatusAsignado || s == StatusEnPreparacion
}

// CanReassign reports whether the preparation may move to another operator.
func (s Status) CanReassign() bool {
	return s != StatusPreparado && s != StatusDespachado
}

// AssignmentType records how an operator was chosen.
type AssignmentType string

const (
	// AssignmentAuto marks an operator chosen by the workload dispatcher.
	AssignmentAuto AssignmentType = "auto"
	// AssignmentManual marks an operator chosen explicitly by a person.
	AssignmentManual AssignmentType = "manual"
)
