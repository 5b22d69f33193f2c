package account

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Role identifies what an actor is allowed to do in the fulfillment workflow.
// Role values are wire-level strings shared with the identity provider and
// must be preserved verbatim.
type Role string

const (
	// RoleCliente is a customer account that requests quotes and confirms deliveries.
	RoleCliente Role = "cliente"
	// RoleSocio is a partner account with the same customer-facing capabilities as cliente.
	RoleSocio Role = "socio"
	// RoleVendedor is a sales representative responsible for first-stage quote review.
	RoleVendedor Role = "vendedor"
	// RoleAdmin is an administrator responsible for second-stage quote review.
	RoleAdmin Role = "admin"
	// RoleRoot is a superuser with every administrator capability.
	RoleRoot Role = "root"
	// RoleBodega is a warehouse operator who prepares and dispatches orders.
	RoleBodega Role = "bodega"
)

func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleCliente:  {},
		RoleSocio:    {},
		RoleVendedor: {},
		RoleAdmin:    {},
		RoleRoot:     {},
		RoleBodega:   {},
	}
}

// Validate checks that the role is one of the known wire-level values.
func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the wire-level representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsElevated reports whether the role carries administrator privileges.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleRoot
}

// IsCustomer reports whether the role belongs to a customer-side actor.
func (r Role) IsCustomer() bool {
	return r == RoleCliente || r == RoleSocio
}

// ErrAccountIsNotConstructed is returned when using an improperly initialized Account.
var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")

// Account represents an authenticated actor known to the identity provider.
// The fulfillment core treats identity as an external collaborator; Account is
// the read model it consumes for authorization, ownership checks, and
// warehouse-operator enumeration.
type Account struct {
	id          kernel.UUID
	email       string
	displayName string
	role        Role
	active      bool

	guard guard.ConstructorGuard
}

// NewAccount creates an Account snapshot with validation.
//
// Parameters:
//   - id: unique identifier issued by the identity provider
//   - email: contact email (required)
//   - displayName: human-readable name (may be empty; DisplayName falls back to email)
//   - role: one of the known wire-level roles
//   - active: whether the account is enabled
func NewAccount(id kernel.UUID, email, displayName string, role Role, active bool) (*Account, error) {
	acc := &Account{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acc.setID(id),
		acc.setEmail(email),
		acc.setRole(role),
	); err != nil {
		return nil, err
	}

	acc.displayName = displayName
	acc.active = active
	return acc, nil
}

// Validate ensures the Account was created through NewAccount.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// IsEqual compares two accounts by their unique identifiers.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Email returns the account's contact email.
func (a *Account) Email() string {
	return a.email
}

// DisplayName returns the human-readable name, falling back to the email
// when no name was provided by the identity provider.
func (a *Account) DisplayName() string {
	if a.displayName != "" {
		return a.displayName
	}
	return a.email
}

// Role returns the account's role.
func (a *Account) Role() Role {
	return a.role
}

// IsActive reports whether the account is enabled.
func (a *Account) IsActive() bool {
	return a.active
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	a.email = email
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
