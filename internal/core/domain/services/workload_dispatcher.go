package services

import (
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/pkg/errs"
)

// Workload score weights. Open order count matters less than the number of
// lines still to pick, so item volume dominates the score.
const (
	activeOrdersWeight = 0.4
	totalItemsWeight   = 0.6
)

// OperatorLoad summarizes the active workload of one warehouse operator.
// Active means preparations in pendiente, asignado, or en_preparacion;
// prepared and dispatched work no longer occupies the operator.
type OperatorLoad struct {
	OperatorID   kernel.UUID
	OperatorName string

	// ActiveOrders is the number of preparations currently occupying the operator.
	ActiveOrders int
	// TotalItems is the number of tracker lines across those preparations.
	TotalItems int
	// EstimatedMinutes is the summed picking-time heuristic (lines*2+5 per order).
	EstimatedMinutes int
	// AverageItemsPerOrder is TotalItems/ActiveOrders, 0 when idle.
	AverageItemsPerOrder float64
	// LoadScore is the weighted score the dispatcher minimizes.
	LoadScore float64
}

// RebalanceReport describes the spread of workload across the operator roster.
type RebalanceReport struct {
	NeedsRebalancing bool
	MaxLoad          float64
	MinLoad          float64
	Difference       float64
	BusiestOperator  string
	IdlestOperator   string
	Suggestion       string
}

// WorkloadDispatcher is a domain service responsible for choosing the
// warehouse operator who should prepare a new order, based on balanced
// workload.
//
// Business rules:
//   - LoadScore = 0.4*activeOrders + 0.6*totalItems
//   - The operator with the strict minimum score wins
//   - Ties resolve to the first operator in listing order, keeping the
//     choice deterministic for a given roster snapshot
//   - An empty roster yields Unavailable; callers degrade to broadcast
type WorkloadDispatcher struct{}

// NewWorkloadDispatcher creates a new WorkloadDispatcher instance.
func NewWorkloadDispatcher() WorkloadDispatcher {
	return WorkloadDispatcher{}
}

// ComputeLoad derives the load summary of one operator from their active
// preparations. The preparations slice must already be filtered to active
// statuses; the method recounts nothing from storage.
func (d WorkloadDispatcher) ComputeLoad(operator *account.Account, active []*preparation.Preparation) (OperatorLoad, error) {
	if err := operator.Validate(); err != nil {
		return OperatorLoad{}, err
	}

	load := OperatorLoad{
		OperatorID:   operator.ID(),
		OperatorName: operator.DisplayName(),
		ActiveOrders: len(active),
	}
	for _, p := range active {
		load.TotalItems += p.TotalItems()
		load.EstimatedMinutes += p.EstimatedMinutes()
	}
	if load.ActiveOrders > 0 {
		load.AverageItemsPerOrder = float64(load.TotalItems) / float64(load.ActiveOrders)
	}
	load.LoadScore = d.Score(load.ActiveOrders, load.TotalItems)
	return load, nil
}

// Score computes the weighted load score from raw counters. Read models that
// aggregate counters in SQL use it to stay consistent with ComputeLoad.
func (d WorkloadDispatcher) Score(activeOrders, totalItems int) float64 {
	return activeOrdersWeight*float64(activeOrders) + totalItemsWeight*float64(totalItems)
}

// Dispatch selects the operator with the minimum load score.
//
// Returns:
//   - OperatorLoad: the winning operator's load summary
//   - error: Unavailable when the roster is empty
func (d WorkloadDispatcher) Dispatch(loads []OperatorLoad) (OperatorLoad, error) {
	if len(loads) == 0 {
		return OperatorLoad{}, errs.NewUnavailableError("warehouse operators")
	}

	best := loads[0]
	for _, l := range loads[1:] {
		if l.LoadScore < best.LoadScore {
			best = l
		}
	}
	return best, nil
}

// SuggestRebalancing inspects the roster's load spread and flags an imbalance
// when the gap between the busiest and idlest operator exceeds half of the
// busiest operator's score.
func (d WorkloadDispatcher) SuggestRebalancing(loads []OperatorLoad) RebalanceReport {
	if len(loads) < 2 {
		return RebalanceReport{}
	}

	busiest, idlest := loads[0], loads[0]
	for _, l := range loads[1:] {
		if l.LoadScore > busiest.LoadScore {
			busiest = l
		}
		if l.LoadScore < idlest.LoadScore {
			idlest = l
		}
	}

	report := RebalanceReport{
		MaxLoad:         busiest.LoadScore,
		MinLoad:         idlest.LoadScore,
		Difference:      roundScore(busiest.LoadScore - idlest.LoadScore),
		BusiestOperator: busiest.OperatorName,
		IdlestOperator:  idlest.OperatorName,
	}
	if report.Difference > 0.5*report.MaxLoad && report.MaxLoad > 0 {
		report.NeedsRebalancing = true
		report.Suggestion = fmt.Sprintf("mover pedidos de %s a %s", busiest.OperatorName, idlest.OperatorName)
	}
	return report
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
