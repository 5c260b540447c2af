package payment_test

import (
	"strings"
	"testing"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/payment"
	"pharmadispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPayment(t *testing.T, method payment.Method, amount float64) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), method, amount, 0, 0)
	require.NoError(t, err)
	return p
}

func paidPayment(t *testing.T, amount float64) *payment.Payment {
	t.Helper()
	p := mustPayment(t, payment.MethodGCash, amount)
	require.NoError(t, p.Process())
	require.NoError(t, p.Complete("gc-12345"))
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("valid_payment_starts_pending", func(t *testing.T) {
		p := mustPayment(t, payment.MethodGCash, 500)

		assert.Equal(t, payment.StatusPending, p.Status())
		assert.True(t, strings.HasPrefix(p.Reference(), kernel.PaymentRefPrefix))
		assert.InDelta(t, 500, p.RefundableRemainder(), 1e-9)
		assert.Nil(t, p.PaidAt())
	})

	t.Run("fee_breakdown_yields_net_amount", func(t *testing.T) {
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(),
			payment.MethodGCash, 500, 10, 7.5)

		require.NoError(t, err)
		assert.InDelta(t, 10, p.ProcessingFee(), 1e-9)
		assert.InDelta(t, 7.5, p.GatewayFee(), 1e-9)
		assert.InDelta(t, 17.5, p.TotalFees(), 1e-9)
		assert.InDelta(t, 482.5, p.NetAmount(), 1e-9)
	})

	t.Run("zero_amount_fails", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.MethodGCash, 0, 0, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative_fees_fail", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.MethodGCash, 500, -1, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.MethodGCash, 500, 0, -1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown_method_fails", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.MethodUnknown, 100, 0, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var p payment.Payment

		require.ErrorIs(t, p.Validate(), payment.ErrPaymentIsNotConstructed)
	})
}

func TestPayment_Lifecycle(t *testing.T) {
	t.Run("process_then_complete", func(t *testing.T) {
		p := mustPayment(t, payment.MethodCard, 350)

		require.NoError(t, p.Process())
		assert.Equal(t, payment.StatusProcessing, p.Status())

		require.NoError(t, p.Complete("txn-9876"))
		assert.Equal(t, payment.StatusPaid, p.Status())
		assert.Equal(t, "txn-9876", p.TransactionRef())
		require.NotNil(t, p.PaidAt())
		assert.WithinDuration(t, time.Now().UTC(), *p.PaidAt(), time.Minute)
	})

	t.Run("cod_settles_from_pending", func(t *testing.T) {
		p := mustPayment(t, payment.MethodCashOnDelivery, 350)

		require.NoError(t, p.Complete("cash"))
		assert.Equal(t, payment.StatusPaid, p.Status())
	})

	t.Run("failed_payment_retries", func(t *testing.T) {
		p := mustPayment(t, payment.MethodGCash, 350)
		require.NoError(t, p.Process())
		require.NoError(t, p.Fail("insufficient balance"))
		assert.Equal(t, "insufficient balance", p.FailureReason())

		require.NoError(t, p.Process())
		assert.Empty(t, p.FailureReason(), "retry clears the old failure")
		require.NoError(t, p.Complete("gc-7777"))
	})

	t.Run("cancel_unsettled_payment", func(t *testing.T) {
		p := mustPayment(t, payment.MethodGCash, 350)

		require.NoError(t, p.Cancel())
		assert.Equal(t, payment.StatusCancelled, p.Status())
		assert.True(t, p.Status().IsTerminal())
	})

	t.Run("paid_payment_cannot_cancel", func(t *testing.T) {
		p := paidPayment(t, 350)

		require.ErrorIs(t, p.Cancel(), payment.ErrInvalidTransition)
		assert.Equal(t, payment.StatusPaid, p.Status())
	})

	t.Run("complete_unprocessed_failed_payment_fails", func(t *testing.T) {
		p := mustPayment(t, payment.MethodGCash, 350)
		require.NoError(t, p.Process())
		require.NoError(t, p.Fail("timeout"))

		require.ErrorIs(t, p.Complete("txn"), payment.ErrInvalidTransition)
	})
}

func TestPayment_Refund(t *testing.T) {
	t.Run("full_refund", func(t *testing.T) {
		p := paidPayment(t, 500)

		require.NoError(t, p.Refund(500, "order damaged in transit"))

		assert.Equal(t, payment.StatusRefunded, p.Status())
		assert.True(t, p.IsFullyRefunded())
		assert.InDelta(t, 0, p.RefundableRemainder(), 1e-9)
	})

	t.Run("partial_refunds_accumulate_to_full", func(t *testing.T) {
		p := paidPayment(t, 500)

		require.NoError(t, p.Refund(200, "one item out of stock"))
		assert.Equal(t, payment.StatusPartiallyRefunded, p.Status())
		assert.InDelta(t, 300, p.RefundableRemainder(), 1e-9)

		require.NoError(t, p.Refund(300, "order cancelled after all"))
		assert.Equal(t, payment.StatusRefunded, p.Status())
		assert.True(t, p.IsFullyRefunded())
	})

	t.Run("refund_exceeding_remainder_fails", func(t *testing.T) {
		p := paidPayment(t, 500)
		require.NoError(t, p.Refund(400, "partial"))

		err := p.Refund(200, "too much")

		require.ErrorIs(t, err, payment.ErrRefundExceedsRemainder)
		assert.InDelta(t, 400, p.RefundedAmount(), 1e-9)
	})

	t.Run("refund_of_unpaid_payment_fails", func(t *testing.T) {
		p := mustPayment(t, payment.MethodGCash, 500)

		require.ErrorIs(t, p.Refund(100, "not paid yet"), payment.ErrInvalidTransition)
	})

	t.Run("non_positive_refund_fails", func(t *testing.T) {
		p := paidPayment(t, 500)

		require.ErrorIs(t, p.Refund(0, "zero"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, p.Refund(-5, "negative"), errs.ErrValueIsInvalid)
	})

	t.Run("fully_refunded_payment_rejects_more", func(t *testing.T) {
		p := paidPayment(t, 500)
		require.NoError(t, p.Refund(500, "full"))

		require.ErrorIs(t, p.Refund(1, "more"), payment.ErrRefundExceedsRemainder)
	})
}

func TestRestorePayment(t *testing.T) {
	t.Run("restores_state", func(t *testing.T) {
		id := kernel.NewUUID()
		ref := kernel.NewReference(kernel.PaymentRefPrefix)
		paidAt := time.Now().UTC().Add(-time.Hour)

		p, err := payment.RestorePayment(id, ref, kernel.NewUUID(), payment.MethodCard,
			500, 12.5, 5, 200, payment.StatusPartiallyRefunded, "txn-1", "", "damaged item",
			time.Now().UTC().Add(-2*time.Hour), &paidAt)

		require.NoError(t, err)
		assert.Equal(t, id, p.ID())
		assert.InDelta(t, 300, p.RefundableRemainder(), 1e-9)
		assert.InDelta(t, 482.5, p.NetAmount(), 1e-9)
		assert.Equal(t, payment.StatusPartiallyRefunded, p.Status())
	})

	t.Run("refunded_amount_above_amount_fails", func(t *testing.T) {
		_, err := payment.RestorePayment(kernel.NewUUID(),
			kernel.NewReference(kernel.PaymentRefPrefix), kernel.NewUUID(),
			payment.MethodCard, 500, 0, 0, 600, payment.StatusRefunded, "", "", "",
			time.Now().UTC(), nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestStatus_StringRoundTrip(t *testing.T) {
	statuses := []payment.Status{
		payment.StatusPending, payment.StatusProcessing, payment.StatusPaid,
		payment.StatusFailed, payment.StatusPartiallyRefunded,
		payment.StatusRefunded, payment.StatusCancelled,
	}
	for _, s := range statuses {
		parsed, err := payment.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := payment.StatusFromString("settled")
	require.Error(t, err)
}
