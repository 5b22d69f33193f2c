// Package customerrepo provides read access to the customer registry. The
// registry belongs to the CRM side of the platform; the fulfillment core only
// resolves the assigned sales representative from it.
package customerrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CustomerDTO represents the database structure of the shared customers table.
type CustomerDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email           string    `gorm:"index"`
	AssignedRepID   *uuid.UUID `gorm:"type:uuid"`
	AssignedRepName string
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// GormCustomerDirectory implements CustomerDirectory over the customers table.
type GormCustomerDirectory struct {
	db *gorm.DB
}

// NewGormCustomerDirectory creates a read-only adapter over the customers table.
func NewGormCustomerDirectory(db *gorm.DB) *GormCustomerDirectory {
	return &GormCustomerDirectory{db: db}
}

// Get retrieves one customer record by ID.
func (r *GormCustomerDirectory) Get(ctx context.Context, id kernel.UUID) (*ports.CustomerRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	return toRecord(dto)
}

// FindByEmail retrieves a customer record by contact email, case-insensitive.
func (r *GormCustomerDirectory) FindByEmail(ctx context.Context, email string) (*ports.CustomerRecord, error) {
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto CustomerDTO
	err := r.db.WithContext(ctx).
		First(&dto, "LOWER(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", email)
		}
		return nil, err
	}

	return toRecord(dto)
}

func toRecord(dto CustomerDTO) (*ports.CustomerRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var rep *kernel.UUID
	if dto.AssignedRepID != nil {
		repID, repErr := kernel.UUIDFromBytes((*dto.AssignedRepID)[:])
		if repErr != nil {
			return nil, repErr
		}
		rep = &repID
	}

	return &ports.CustomerRecord{
		ID:              id,
		Email:           dto.Email,
		AssignedRep:     rep,
		AssignedRepName: dto.AssignedRepName,
	}, nil
}
