package services

import (
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/pkg/errs"
)

// Permission names a capability checked before a lifecycle operation.
// Ownership rules (assigned sales rep, order customer) are enforced
// separately by the aggregates and handlers; a granted permission only
// answers "can this role ever do this".
type Permission string

const (
	PermQuoteCreate       Permission = "quote:create"
	PermQuoteVendorReview Permission = "quote:vendor_review"
	PermQuoteAdminReview  Permission = "quote:admin_review"
	PermQuoteConvert      Permission = "quote:convert"
	PermOrderCreate       Permission = "order:create"
	PermOrderUpdate       Permission = "order:update"
	PermOrderCancel       Permission = "order:cancel"
	PermWarehousePrepare  Permission = "warehouse:prepare"
	PermWarehouseDispatch Permission = "warehouse:dispatch"
	PermWarehouseReassign Permission = "warehouse:reassign"
	PermWarehouseView     Permission = "warehouse:view"
)

// permissions is the static role→capability table. Every role can read its
// own row at a glance; changes here are reviewed as business rules.
var permissions = map[account.Role]map[Permission]struct{}{
	account.RoleCliente: {
		PermQuoteCreate:  {},
		PermQuoteConvert: {},
		PermOrderCreate:  {},
		PermOrderUpdate:  {},
		PermOrderCancel:  {},
	},
	account.RoleSocio: {
		PermQuoteCreate:  {},
		PermQuoteConvert: {},
		PermOrderCreate:  {},
		PermOrderUpdate:  {},
		PermOrderCancel:  {},
	},
	account.RoleVendedor: {
		PermQuoteCreate:       {},
		PermQuoteVendorReview: {},
		PermQuoteConvert:      {},
		PermOrderCreate:       {},
		PermOrderUpdate:       {},
		PermOrderCancel:       {},
		PermWarehouseView:     {},
	},
	account.RoleBodega: {
		PermOrderUpdate:       {},
		PermWarehousePrepare:  {},
		PermWarehouseDispatch: {},
		PermWarehouseReassign: {},
		PermWarehouseView:     {},
	},
	account.RoleAdmin: {
		PermQuoteCreate:       {},
		PermQuoteVendorReview: {},
		PermQuoteAdminReview:  {},
		PermQuoteConvert:      {},
		PermOrderCreate:       {},
		PermOrderUpdate:       {},
		PermOrderCancel:       {},
		PermWarehousePrepare:  {},
		PermWarehouseDispatch: {},
		PermWarehouseReassign: {},
		PermWarehouseView:     {},
	},
	account.RoleRoot: {
		PermQuoteCreate:       {},
		PermQuoteVendorReview: {},
		PermQuoteAdminReview:  {},
		PermQuoteConvert:      {},
		PermOrderCreate:       {},
		PermOrderUpdate:       {},
		PermOrderCancel:       {},
		PermWarehousePrepare:  {},
		PermWarehouseDispatch: {},
		PermWarehouseReassign: {},
		PermWarehouseView:     {},
	},
}

// Authorize checks the static capability table. It returns Forbidden when the
// role does not carry the permission.
func Authorize(role account.Role, perm Permission) error {
	if _, ok := permissions[role][perm]; !ok {
		return errs.NewForbiddenError(role.String(), string(perm))
	}
	return nil
}
