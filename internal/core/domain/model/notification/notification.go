// Package notification contains the in-app notification record emitted on
// lifecycle transitions. Delivery is best-effort: emitters log and swallow
// sink failures so a lost notification never blocks a workflow step.
package notification

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Type identifies the workflow event a notification reports.
type Type string

const (
	TypeQuoteNew            Type = "quote_new"
	TypeQuoteVendorApproved Type = "quote_vendor_approved"
	TypeQuoteVendorRejected Type = "quote_vendor_rejected"
	TypeQuoteAdminApproved  Type = "quote_admin_approved"
	TypeQuoteAdminRejected  Type = "quote_admin_rejected"
	TypeQuoteConverted      Type = "quote_converted"
	TypeOrderNew            Type = "order_new"
	TypeOrderAssigned       Type = "order_assigned"
	TypeOrderReassigned     Type = "order_reassigned"
	TypeOrderDispatched     Type = "order_dispatched"
	TypeOrderDelivered      Type = "order_delivered"
	TypeOrderCancelled      Type = "order_cancelled"
)

// Priority orders notifications in the recipient's inbox.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// RelatedEntity points the notification at the quote or order it concerns.
type RelatedEntity struct {
	Kind   string // "quote" or "order"
	ID     kernel.UUID
	Number string
}

// Notification is a single in-app message addressed to one account.
type Notification struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	Type      Type
	Title     string
	Message   string
	Related   RelatedEntity
	Priority  Priority
	ActionURL string
	Read      bool
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// New creates a notification addressed to the given account. Priority
// defaults to normal when unset.
func New(userID kernel.UUID, typ Type, title, message string, related RelatedEntity, priority Priority, now time.Time) (Notification, error) {
	if err := errors.Join(
		userID.Validate(),
		func() error {
			if typ == "" {
				return errs.NewValueIsRequiredError("type")
			}
			return nil
		}(),
		func() error {
			if title == "" {
				return errs.NewValueIsRequiredError("title")
			}
			return nil
		}(),
	); err != nil {
		return Notification{}, err
	}

	if priority == "" {
		priority = PriorityNormal
	}
	return Notification{
		ID:        kernel.NewUUID(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Related:   related,
		Priority:  priority,
		CreatedAt: now,
	}, nil
}
