package quote

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Item is a single requested line of a quote. Unit price and subtotal are
// filled in progressively by the sales representative during review, so both
// may be zero on a freshly created quote.
type Item struct {
	ProductID   string
	ProductName string
	ProductCode string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
	Notes       string
}

// Validate checks the structural invariants of a requested line.
func (i Item) Validate() error {
	return errors.Join(
		func() error {
			if i.ProductID == "" {
				return errs.NewValueIsRequiredError("productId")
			}
			return nil
		}(),
		func() error {
			if i.Quantity <= 0 {
				return errs.NewValueIsInvalidError("quantity")
			}
			return nil
		}(),
	)
}

// CustomerInfo carries the contact identity captured with a quote request.
// UserID is set when the request came from an authenticated customer account;
// CustomerID references the customer directory record when one is known.
type CustomerInfo struct {
	UserID       *kernel.UUID
	CustomerID   *kernel.UUID
	Name         string
	Email        string
	Phone        string
	Organization string
	TaxID        string
}

func (c CustomerInfo) validate() error {
	return errors.Join(
		func() error {
			if c.Name == "" {
				return errs.NewValueIsRequiredError("customerName")
			}
			return nil
		}(),
		func() error {
			if c.Email == "" {
				return errs.NewValueIsRequiredError("customerEmail")
			}
			return nil
		}(),
		func() error {
			if c.Phone == "" {
				return errs.NewValueIsRequiredError("customerPhone")
			}
			return nil
		}(),
		func() error {
			if c.Organization == "" {
				return errs.NewValueIsRequiredError("organization")
			}
			return nil
		}(),
	)
}

// ReviewStamps records who resolved each review stage and when.
type ReviewStamps struct {
	VendorReviewedBy *kernel.UUID
	VendorReviewedAt *time.Time
	AdminReviewedBy  *kernel.UUID
	AdminReviewedAt  *time.Time
}

// ErrQuoteIsNotConstructed is returned when using an improperly initialized Quote.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote or RestoreQuote constructor")

// Quote is the aggregate root of the two-stage quotation workflow: a customer
// request priced by a sales representative, approved by an administrator, and
// finally converted into an order at most once.
type Quote struct {
	id       kernel.UUID
	number   string
	customer CustomerInfo

	assignedRep     *kernel.UUID
	assignedRepName string

	items []Item

	subtotal float64
	discount float64
	tax      float64
	total    float64

	status          Status
	customerMessage string
	vendorNotes     string
	adminNotes      string
	rejectionReason string

	stamps ReviewStamps

	orderID     *kernel.UUID
	orderNumber string

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewQuote creates a quote in the pendiente state.
//
// Parameters:
//   - id: unique identifier of the quote
//   - number: human-facing sequence number (QUO-YYMM-NNNN)
//   - customer: contact identity (name, email, phone, organization required)
//   - items: requested lines, at least one
//   - message: optional free-form customer message
//   - now: creation instant
func NewQuote(id kernel.UUID, number string, customer CustomerInfo, items []Item, message string, now time.Time) (*Quote, error) {
	q := &Quote{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setID(id),
		q.setNumber(number),
		q.setCustomer(customer),
		q.setItems(items),
	); err != nil {
		return nil, err
	}

	q.status = StatusPendiente
	q.customerMessage = message
	q.createdAt = now
	q.updatedAt = now
	return q, nil
}

// RestoreQuote reconstructs a quote from storage without replaying its
// lifecycle. It trusts the persisted snapshot and performs no transition checks.
func RestoreQuote(id kernel.UUID, number string, customer CustomerInfo,
	assignedRep *kernel.UUID, assignedRepName string, items []Item,
	subtotal, discount, tax, total float64, status Status,
	customerMessage, vendorNotes, adminNotes, rejectionReason string,
	stamps ReviewStamps, orderID *kernel.UUID, orderNumber string,
	createdAt, updatedAt time.Time) *Quote {
	return &Quote{
		id:              id,
		number:          number,
		customer:        customer,
		assignedRep:     assignedRep,
		assignedRepName: assignedRepName,
		items:           items,
		subtotal:        subtotal,
		discount:        discount,
		tax:             tax,
		total:           total,
		status:          status,
		customerMessage: customerMessage,
		vendorNotes:     vendorNotes,
		adminNotes:      adminNotes,
		rejectionReason: rejectionReason,
		stamps:          stamps,
		orderID:         orderID,
		orderNumber:     orderNumber,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		guard:           guard.NewConstructorGuard(),
	}
}

// Validate ensures the Quote was created through a constructor.
func (q *Quote) Validate() error {
	if q == nil {
		return ErrQuoteIsNotConstructed
	}
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

// IsEqual compares two quotes by their unique identifiers.
func (q *Quote) IsEqual(other *Quote) bool {
	return other != nil && q.id.IsEqual(other.id)
}

// AssignSalesRep records the representative responsible for first-stage review.
func (q *Quote) AssignSalesRep(rep kernel.UUID, name string, now time.Time) error {
	if err := rep.Validate(); err != nil {
		return err
	}
	q.assignedRep = &rep
	q.assignedRepName = name
	q.touch(now)
	return nil
}

// IsAssignedTo reports whether the given account is the assigned sales representative.
func (q *Quote) IsAssignedTo(rep kernel.UUID) bool {
	return q.assignedRep != nil && q.assignedRep.IsEqual(rep)
}

// SetPricing replaces the monetary figures filled in during review.
func (q *Quote) SetPricing(subtotal, discount, tax, total float64, now time.Time) error {
	if total < 0 || subtotal < 0 || discount < 0 || tax < 0 {
		return errs.NewValueIsInvalidError("totals")
	}
	q.subtotal = subtotal
	q.discount = discount
	q.tax = tax
	q.total = total
	q.touch(now)
	return nil
}

// IsPriced reports whether the quote carries a positive total.
func (q *Quote) IsPriced() bool {
	return q.total > 0
}

// VendorApprove resolves first-stage review positively.
func (q *Quote) VendorApprove(reviewer kernel.UUID, notes string, now time.Time) error {
	next, err := q.status.VendorReview(true)
	if err != nil {
		return err
	}
	q.status = next
	if notes != "" {
		q.vendorNotes = notes
	}
	q.stamps.VendorReviewedBy = &reviewer
	q.stamps.VendorReviewedAt = &now
	q.touch(now)
	return nil
}

// VendorReject resolves first-stage review negatively with a reason.
func (q *Quote) VendorReject(reviewer kernel.UUID, notes, reason string, now time.Time) error {
	next, err := q.status.VendorReview(false)
	if err != nil {
		return err
	}
	q.status = next
	if notes != "" {
		q.vendorNotes = notes
	}
	q.rejectionReason = reason
	q.stamps.VendorReviewedBy = &reviewer
	q.stamps.VendorReviewedAt = &now
	q.touch(now)
	return nil
}

// AdminApprove resolves second-stage review positively; the quote becomes
// eligible for conversion.
func (q *Quote) AdminApprove(reviewer kernel.UUID, notes string, now time.Time) error {
	next, err := q.status.AdminReview(true)
	if err != nil {
		return err
	}
	q.status = next
	if notes != "" {
		q.adminNotes = notes
	}
	q.stamps.AdminReviewedBy = &reviewer
	q.stamps.AdminReviewedAt = &now
	q.touch(now)
	return nil
}

// AdminReject resolves second-stage review negatively with a reason.
func (q *Quote) AdminReject(reviewer kernel.UUID, notes, reason string, now time.Time) error {
	next, err := q.status.AdminReview(false)
	if err != nil {
		return err
	}
	q.status = next
	if notes != "" {
		q.adminNotes = notes
	}
	q.rejectionReason = reason
	q.stamps.AdminReviewedBy = &reviewer
	q.stamps.AdminReviewedAt = &now
	q.touch(now)
	return nil
}

// ConvertToOrder marks the quote as converted and links the resulting order.
// A quote converts at most once: a second call fails with Conflict. Conversion
// requires final approval, at least one line, and a positive total.
func (q *Quote) ConvertToOrder(orderID kernel.UUID, orderNumber string, now time.Time) error {
	if q.orderID != nil {
		return errs.NewConflictError("quote already converted")
	}
	if len(q.items) == 0 || !q.IsPriced() {
		return errs.NewUnprocessableError("quote has no priced items")
	}
	next, err := q.status.Convert()
	if err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.status = next
	q.orderID = &orderID
	q.orderNumber = orderNumber
	q.touch(now)
	return nil
}

// Expire marks a still-open quote as vencida.
func (q *Quote) Expire(now time.Time) error {
	next, err := q.status.Expire()
	if err != nil {
		return err
	}
	q.status = next
	q.touch(now)
	return nil
}

func (q *Quote) touch(now time.Time) {
	q.updatedAt = now
}

// ID returns the quote's unique identifier.
func (q *Quote) ID() kernel.UUID {
	return q.id
}

// Number returns the human-facing sequence number.
func (q *Quote) Number() string {
	return q.number
}

// Customer returns the contact identity captured with the request.
func (q *Quote) Customer() CustomerInfo {
	return q.customer
}

// AssignedRep returns the assigned sales representative, if any.
func (q *Quote) AssignedRep() *kernel.UUID {
	return q.assignedRep
}

// AssignedRepName returns the display name of the assigned representative.
func (q *Quote) AssignedRepName() string {
	return q.assignedRepName
}

// Items returns the requested lines.
func (q *Quote) Items() []Item {
	return q.items
}

// Subtotal returns the pre-discount sum of line subtotals.
func (q *Quote) Subtotal() float64 { return q.subtotal }

// Discount returns the discount applied during review.
func (q *Quote) Discount() float64 { return q.discount }

// Tax returns the tax amount applied during review.
func (q *Quote) Tax() float64 { return q.tax }

// Total returns the final quoted amount.
func (q *Quote) Total() float64 { return q.total }

// Status returns the current lifecycle state.
func (q *Quote) Status() Status {
	return q.status
}

// CustomerMessage returns the free-form message attached by the customer.
func (q *Quote) CustomerMessage() string { return q.customerMessage }

// VendorNotes returns the notes left by the sales representative.
func (q *Quote) VendorNotes() string { return q.vendorNotes }

// AdminNotes returns the notes left by the administrator.
func (q *Quote) AdminNotes() string { return q.adminNotes }

// RejectionReason returns the reason recorded with a rejection.
func (q *Quote) RejectionReason() string { return q.rejectionReason }

// Stamps returns the review resolution stamps.
func (q *Quote) Stamps() ReviewStamps {
	return q.stamps
}

// OrderID returns the identifier of the order this quote converted into, if any.
func (q *Quote) OrderID() *kernel.UUID {
	return q.orderID
}

// OrderNumber returns the sequence number of the converted order, if any.
func (q *Quote) OrderNumber() string {
	return q.orderNumber
}

// CreatedAt returns the creation instant.
func (q *Quote) CreatedAt() time.Time { return q.createdAt }

// UpdatedAt returns the instant of the last mutation.
func (q *Quote) UpdatedAt() time.Time { return q.updatedAt }

func (q *Quote) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.id = id
	return nil
}

func (q *Quote) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("quoteNumber")
	}
	q.number = number
	return nil
}

func (q *Quote) setCustomer(customer CustomerInfo) error {
	if err := customer.validate(); err != nil {
		return err
	}
	q.customer = customer
	return nil
}

func (q *Quote) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewUnprocessableError("items")
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	q.items = items
	return nil
}
