package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
)

// Actor is the authenticated identity a command runs on behalf of. The HTTP
// adapter builds it from the verified session; handlers trust it and apply
// the capability and ownership rules on top.
type Actor struct {
	ID    kernel.UUID
	Email string
	Role  account.Role
}

// NewActor creates an actor with validation.
func NewActor(id kernel.UUID, email string, role account.Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Email: email, Role: role}, nil
}

// Validate checks the actor carries a usable identity and role.
func (a Actor) Validate() error {
	return errors.Join(a.ID.Validate(), a.Role.Validate())
}
