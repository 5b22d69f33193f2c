package preparation

import (
	"errors"
	"math"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Item tracks picking progress for one order line.
type Item struct {
	ProductID        string
	ProductName      string
	QuantityOrdered  int
	QuantityPrepared int
	IsPrepared       bool
	Notes            string
}

// Validate checks the structural invariants of a tracker line.
func (i Item) Validate() error {
	return errors.Join(
		func() error {
			if i.ProductID == "" {
				return errs.NewValueIsRequiredError("productId")
			}
			return nil
		}(),
		func() error {
			if i.QuantityOrdered <= 0 {
				return errs.NewValueIsInvalidError("quantityOrdered")
			}
			return nil
		}(),
		func() error {
			if i.QuantityPrepared < 0 {
				return errs.NewValueIsInvalidError("quantityPrepared")
			}
			return nil
		}(),
	)
}

// Assignment records who is (or was) responsible for picking the order.
type Assignment struct {
	Operator     *kernel.UUID
	OperatorName string
	AssignedAt   *time.Time
	AssignedBy   AssignmentType
}

// Dispatch records the hand-off to the carrier.
type Dispatch struct {
	By      *kernel.UUID
	ByName  string
	At      *time.Time
	Carrier string
	// TrackingNumber is the carrier reference propagated to the order.
	TrackingNumber string
	Notes          string
}

// Reassignment records the most recent operator change.
type Reassignment struct {
	From *kernel.UUID
	By   *kernel.UUID
	At   *time.Time
}

// ErrPreparationIsNotConstructed is returned when using an improperly
// initialized Preparation.
var ErrPreparationIsNotConstructed = errors.New("Preparation must be created via NewPreparation or RestorePreparation constructor")

// Preparation is the warehouse-side tracker for a single order: one tracker
// line per order line, picking counters, and the assignment/dispatch trail.
// Progress counters are derived, never stored independently: preparedItems is
// the count of fully picked lines and progress is round(100*prepared/total).
type Preparation struct {
	id          kernel.UUID
	orderID     kernel.UUID
	orderNumber string

	status     Status
	assignment Assignment

	items         []Item
	totalItems    int
	preparedItems int
	progress      int

	// estimatedMinutes = lines*2 + 5, the workload heuristic used by the dispatcher.
	estimatedMinutes int

	startedAt   *time.Time
	completedAt *time.Time

	dispatch     Dispatch
	reassignment Reassignment

	notes string

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewPreparation creates an unassigned tracker in the pendiente state, one
// line per order line with zero progress. Used when no operator could be
// chosen at creation time.
func NewPreparation(id, orderID kernel.UUID, orderNumber string, items []Item, now time.Time) (*Preparation, error) {
	p := &Preparation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrder(orderID, orderNumber),
		p.setItems(items),
	); err != nil {
		return nil, err
	}

	p.status = StatusPendiente
	p.recompute()
	p.createdAt = now
	p.updatedAt = now
	return p, nil
}

// NewAssignedPreparation creates a tracker already assigned to an operator,
// in the asignado state.
func NewAssignedPreparation(id, orderID kernel.UUID, orderNumber string, items []Item,
	operator kernel.UUID, operatorName string, by AssignmentType, now time.Time) (*Preparation, error) {
	p, err := NewPreparation(id, orderID, orderNumber, items, now)
	if err != nil {
		return nil, err
	}
	if err := p.Assign(operator, operatorName, kernel.UUID{}, by, now); err != nil {
		return nil, err
	}
	return p, nil
}

// RestorePreparation reconstructs a tracker from storage without replaying
// its lifecycle.
func RestorePreparation(id, orderID kernel.UUID, orderNumber string, status Status,
	assignment Assignment, items []Item, estimatedMinutes int,
	startedAt, completedAt *time.Time, dispatch Dispatch, reassignment Reassignment,
	notes string, createdAt, updatedAt time.Time) *Preparation {
	p := &Preparation{
		id:               id,
		orderID:          orderID,
		orderNumber:      orderNumber,
		status:           status,
		assignment:       assignment,
		items:            items,
		estimatedMinutes: estimatedMinutes,
		startedAt:        startedAt,
		completedAt:      completedAt,
		dispatch:         dispatch,
		reassignment:     reassignment,
		notes:            notes,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		guard:            guard.NewConstructorGuard(),
	}
	p.recomputeCounters()
	return p
}

// Validate ensures the Preparation was created through a constructor.
func (p *Preparation) Validate() error {
	if p == nil {
		return ErrPreparationIsNotConstructed
	}
	return p.guard.Validate(ErrPreparationIsNotConstructed)
}

// IsEqual compares two preparations by their unique identifiers.
func (p *Preparation) IsEqual(other *Preparation) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// Assign hands the preparation to an operator. Reassigning while picking is
// underway resets the tracker to asignado; a preparation that is already
// preparado or despachado cannot move. When an operator was previously
// assigned the reassignment trail is stamped with the acting account.
func (p *Preparation) Assign(operator kernel.UUID, operatorName string, actor kernel.UUID, by AssignmentType, now time.Time) error {
	if err := operator.Validate(); err != nil {
		return err
	}
	if !p.status.CanReassign() {
		return errs.NewInvalidStateError("preparation", string(p.status))
	}

	if p.assignment.Operator != nil {
		from := *p.assignment.Operator
		p.reassignment = Reassignment{From: &from, At: &now}
		if actor.Validate() == nil {
			actingBy := actor
			p.reassignment.By = &actingBy
		}
	}

	p.assignment = Assignment{
		Operator:     &operator,
		OperatorName: operatorName,
		AssignedAt:   &now,
		AssignedBy:   by,
	}
	p.status = StatusAsignado
	p.touch(now)
	return nil
}

// RecordProgress replaces the tracker lines with the warehouse's latest
// counts and recomputes the derived counters. The first progress report moves
// the tracker from asignado to en_preparacion; a fully picked tracker becomes
// preparado. A dispatched preparation rejects further progress.
func (p *Preparation) RecordProgress(items []Item, notes string, now time.Time) error {
	if p.status == StatusDespachado {
		return errs.NewInvalidStateError("preparation", string(p.status))
	}
	if len(items) == 0 {
		return errs.NewUnprocessableError("items")
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return errs.NewUnprocessableErrorWithCause("items", err)
		}
	}

	p.items = items
	p.recompute()
	if notes != "" {
		p.notes = notes
	}

	if p.status == StatusAsignado {
		p.status = StatusEnPreparacion
		if p.startedAt == nil {
			p.startedAt = &now
		}
	}
	if p.preparedItems == p.totalItems {
		p.status = StatusPreparado
		if p.completedAt == nil {
			p.completedAt = &now
		}
	}
	p.touch(now)
	return nil
}

// MarkDispatched records the carrier hand-off. Only a fully prepared tracker
// can be dispatched.
func (p *Preparation) MarkDispatched(by kernel.UUID, byName, carrier, trackingNumber, notes string, now time.Time) error {
	if p.status != StatusPreparado {
		return errs.NewInvalidStateError("preparation", string(p.status))
	}
	p.status = StatusDespachado
	p.dispatch = Dispatch{
		By:             &by,
		ByName:         byName,
		At:             &now,
		Carrier:        carrier,
		TrackingNumber: trackingNumber,
		Notes:          notes,
	}
	p.touch(now)
	return nil
}

func (p *Preparation) recompute() {
	p.recomputeCounters()
	p.estimatedMinutes = len(p.items)*2 + 5
}

func (p *Preparation) recomputeCounters() {
	p.totalItems = len(p.items)
	prepared := 0
	for _, it := range p.items {
		if it.IsPrepared {
			prepared++
		}
	}
	p.preparedItems = prepared
	if p.totalItems == 0 {
		p.progress = 0
		return
	}
	p.progress = int(math.Round(100 * float64(prepared) / float64(p.totalItems)))
}

func (p *Preparation) touch(now time.Time) {
	p.updatedAt = now
}

// ID returns the tracker's unique identifier.
func (p *Preparation) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the tracked order.
func (p *Preparation) OrderID() kernel.UUID {
	return p.orderID
}

// OrderNumber returns the sequence number of the tracked order.
func (p *Preparation) OrderNumber() string {
	return p.orderNumber
}

// Status returns the current lifecycle state.
func (p *Preparation) Status() Status {
	return p.status
}

// Assignment returns the current operator assignment.
func (p *Preparation) Assignment() Assignment {
	return p.assignment
}

// IsAssignedTo reports whether the given operator holds the preparation.
func (p *Preparation) IsAssignedTo(operator kernel.UUID) bool {
	return p.assignment.Operator != nil && p.assignment.Operator.IsEqual(operator)
}

// Items returns the tracker lines.
func (p *Preparation) Items() []Item {
	return p.items
}

// TotalItems returns the number of tracker lines.
func (p *Preparation) TotalItems() int { return p.totalItems }

// PreparedItems returns the number of fully picked lines.
func (p *Preparation) PreparedItems() int { return p.preparedItems }

// Progress returns the picking completion percentage, 0..100.
func (p *Preparation) Progress() int { return p.progress }

// EstimatedMinutes returns the workload heuristic for this preparation.
func (p *Preparation) EstimatedMinutes() int { return p.estimatedMinutes }

// StartedAt returns the instant of the first progress report, if any.
func (p *Preparation) StartedAt() *time.Time { return p.startedAt }

// CompletedAt returns the instant the tracker became fully picked, if any.
func (p *Preparation) CompletedAt() *time.Time { return p.completedAt }

// Dispatch returns the carrier hand-off record.
func (p *Preparation) Dispatch() Dispatch {
	return p.dispatch
}

// Reassignment returns the most recent operator change, if any.
func (p *Preparation) Reassignment() Reassignment {
	return p.reassignment
}

// Notes returns the warehouse notes attached to the tracker.
func (p *Preparation) Notes() string { return p.notes }

// SetNotes replaces the warehouse notes. Empty input leaves them unchanged.
func (p *Preparation) SetNotes(notes string) {
	if notes != "" {
		p.notes = notes
	}
}

// CreatedAt returns the creation instant.
func (p *Preparation) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the instant of the last mutation.
func (p *Preparation) UpdatedAt() time.Time { return p.updatedAt }

func (p *Preparation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Preparation) setOrder(orderID kernel.UUID, orderNumber string) error {
	return errors.Join(
		func() error {
			if err := orderID.Validate(); err != nil {
				return err
			}
			p.orderID = orderID
			return nil
		}(),
		func() error {
			if orderNumber == "" {
				return errs.NewValueIsRequiredError("orderNumber")
			}
			p.orderNumber = orderNumber
			return nil
		}(),
	)
}

func (p *Preparation) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewUnprocessableError("items")
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	p.items = items
	return nil
}
