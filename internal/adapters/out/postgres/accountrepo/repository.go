// Package accountrepo provides read access to the account directory. Accounts
// are owned by the identity service; the fulfillment core only reads them for
// authorization context and roster enumeration, so this adapter has no write
// operations.
package accountrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// AccountDTO represents the database structure of the shared accounts table.
type AccountDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email       string    `gorm:"uniqueIndex"`
	DisplayName string
	Role        string `gorm:"index;size:16"`
	Active      bool
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// GormIdentityProvider implements IdentityProvider over the accounts table.
type GormIdentityProvider struct {
	db *gorm.DB
}

// NewGormIdentityProvider creates a read-only adapter over the accounts table.
func NewGormIdentityProvider(db *gorm.DB) *GormIdentityProvider {
	return &GormIdentityProvider{db: db}
}

// Get retrieves one account by ID.
func (r *GormIdentityProvider) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByRole retrieves every active account holding the given role,
// ordered by display name so the dispatcher's tie-break stays deterministic.
func (r *GormIdentityProvider) GetActiveByRole(ctx context.Context, role account.Role) ([]*account.Account, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []AccountDTO
	err := r.db.WithContext(ctx).
		Order("display_name").
		Find(&dtos, "role = ? AND active", role.String()).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]*account.Account, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return account.NewAccount(id, dto.Email, dto.DisplayName, account.Role(dto.Role), dto.Active)
}
