package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fulfillment/internal/pkg/errs"
)

func Test_Status_Validate(t *testing.T) {
	for _, s := range []Status{StatusPendiente, StatusConfirmado, StatusProcesando,
		StatusEnviado, StatusEntregado, StatusCancelado} {
		assert.NoError(t, s.Validate())
	}

	assert.ErrorIs(t, Status("shipped").Validate(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, Status("").Validate(), errs.ErrValueIsInvalid)
}

func Test_Status_IsTerminal(t *testing.T) {
	assert.True(t, StatusEntregado.IsTerminal())
	assert.True(t, StatusCancelado.IsTerminal())
	assert.False(t, StatusEnviado.IsTerminal())
	assert.False(t, StatusPendiente.IsTerminal())
}

func Test_Status_CanPrepare(t *testing.T) {
	assert.True(t, StatusConfirmado.CanPrepare())
	assert.True(t, StatusProcesando.CanPrepare())
	assert.False(t, StatusPendiente.CanPrepare())
	assert.False(t, StatusEnviado.CanPrepare())
}

func Test_PaymentStatus_Validate(t *testing.T) {
	assert.NoError(t, PaymentParcial.Validate())
	assert.ErrorIs(t, PaymentStatus("paid").Validate(), errs.ErrValueIsInvalid)
}

func Test_PaymentMethod_Validate(t *testing.T) {
	assert.NoError(t, MethodCredito30.Validate())
	assert.NoError(t, PaymentMethod("").Validate())
	assert.ErrorIs(t, PaymentMethod("bitcoin").Validate(), errs.ErrValueIsInvalid)
}
