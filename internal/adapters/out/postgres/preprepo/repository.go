package preprepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/preparation"
	"fulfillment/internal/pkg/errs"
)

// GormPreparationRepository implements PreparationRepository using GORM.
type GormPreparationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPreparationRepository creates a new GORM preparation repository.
func NewGormPreparationRepository(db *gorm.DB, tracker aggregateTracker) *GormPreparationRepository {
	return &GormPreparationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new preparation tracker to the database.
func (r *GormPreparationRepository) Add(ctx context.Context, aggregate *preparation.Preparation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing preparation tracker to the database.
func (r *GormPreparationRepository) Update(ctx context.Context, aggregate *preparation.Preparation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PreparationDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrderID retrieves the preparation tracker of an order.
func (r *GormPreparationRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*preparation.Preparation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PreparationDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOperator retrieves the preparations currently occupying one
// operator: asignado and en_preparacion. The workload dispatcher feeds these
// into the load score.
func (r *GormPreparationRepository) GetActiveByOperator(ctx context.Context, operatorID kernel.UUID) ([]*preparation.Preparation, error) {
	if err := operatorID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PreparationDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "operator_id = ? AND status IN ?", operatorID.Bytes(),
			[]string{preparation.StatusAsignado.String(), preparation.StatusEnPreparacion.String()}).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetUnassigned retrieves preparations waiting for an operator, oldest first.
// The assignment sweep drains this backlog.
func (r *GormPreparationRepository) GetUnassigned(ctx context.Context) ([]*preparation.Preparation, error) {
	var dtos []PreparationDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ? AND operator_id IS NULL", preparation.StatusPendiente.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []PreparationDTO) ([]*preparation.Preparation, error) {
	preparations := make([]*preparation.Preparation, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		preparations = append(preparations, p)
	}
	return preparations, nil
}
