package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// operatorPicker chooses the warehouse operator for a new preparation: it
// enumerates the active bodega roster, computes each operator's current load,
// and delegates the choice to the workload dispatcher.
type operatorPicker struct {
	identity   ports.IdentityProvider
	dispatcher services.WorkloadDispatcher
}

func newOperatorPicker(identity ports.IdentityProvider) operatorPicker {
	return operatorPicker{
		identity:   identity,
		dispatcher: services.NewWorkloadDispatcher(),
	}
}

// pick returns the least-loaded operator. The exclude filter is used by
// reassignment to keep the preparation away from its current assignee.
// Returns Unavailable (via the dispatcher) when the roster is empty.
func (p operatorPicker) pick(ctx context.Context, preps ports.PreparationRepository, exclude *kernel.UUID) (services.OperatorLoad, error) {
	roster, err := p.identity.GetActiveByRole(ctx, account.RoleBodega)
	if err != nil {
		return services.OperatorLoad{}, err
	}

	loads := make([]services.OperatorLoad, 0, len(roster))
	for _, op := range roster {
		if exclude != nil && op.ID().IsEqual(*exclude) {
			continue
		}
		active, err := preps.GetActiveByOperator(ctx, op.ID())
		if err != nil {
			return services.OperatorLoad{}, err
		}
		load, err := p.dispatcher.ComputeLoad(op, active)
		if err != nil {
			return services.OperatorLoad{}, err
		}
		loads = append(loads, load)
	}

	return p.dispatcher.Dispatch(loads)
}
