package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/pkg/errs"
)

func Test_Authorize(t *testing.T) {
	tests := []struct {
		name    string
		role    account.Role
		perm    Permission
		granted bool
	}{
		{"vendedor reviews first stage", account.RoleVendedor, PermQuoteVendorReview, true},
		{"vendedor cannot review second stage", account.RoleVendedor, PermQuoteAdminReview, false},
		{"admin reviews second stage", account.RoleAdmin, PermQuoteAdminReview, true},
		{"root reviews second stage", account.RoleRoot, PermQuoteAdminReview, true},
		{"cliente converts own quote", account.RoleCliente, PermQuoteConvert, true},
		{"bodega cannot convert", account.RoleBodega, PermQuoteConvert, false},
		{"bodega prepares", account.RoleBodega, PermWarehousePrepare, true},
		{"cliente cannot prepare", account.RoleCliente, PermWarehousePrepare, false},
		{"bodega reassigns", account.RoleBodega, PermWarehouseReassign, true},
		{"socio updates orders", account.RoleSocio, PermOrderUpdate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.role, tt.perm)

			if tt.granted {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrForbidden)
			}
		})
	}
}
