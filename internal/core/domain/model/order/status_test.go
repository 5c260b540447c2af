package order_test

import (
	"testing"

	"pharmadispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.StatusPending,
		order.StatusAccepted,
		order.StatusPreparing,
		order.StatusReadyForPickup,
		order.StatusPickedUp,
		order.StatusDelivered,
		order.StatusCancelled,
		order.StatusRefunded,
	}
}

// allowedEdges mirrors the lifecycle graph; every pair not listed here
// must be rejected by TransitionTo.
func allowedEdges() map[order.Status][]order.Status {
	return map[order.Status][]order.Status{
		order.StatusPending:        {order.StatusAccepted, order.StatusCancelled},
		order.StatusAccepted:       {order.StatusPreparing, order.StatusCancelled},
		order.StatusPreparing:      {order.StatusReadyForPickup, order.StatusCancelled},
		order.StatusReadyForPickup: {order.StatusPickedUp, order.StatusCancelled},
		order.StatusPickedUp:       {order.StatusDelivered},
		order.StatusDelivered:      {order.StatusRefunded},
	}
}

func TestStatus_TransitionTable(t *testing.T) {
	edges := allowedEdges()

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			allowed := false
			for _, next := range edges[from] {
				if next == to {
					allowed = true
					break
				}
			}

			got, err := from.TransitionTo(to)
			if allowed {
				require.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, got)
			} else {
				require.ErrorIs(t, err, order.ErrInvalidTransition, "%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.True(t, order.StatusRefunded.IsTerminal())
	assert.False(t, order.StatusDelivered.IsTerminal(), "delivered still allows the refund edge")
	assert.False(t, order.StatusPending.IsTerminal())
}

func TestStatus_Cancellable(t *testing.T) {
	cancellable := map[order.Status]bool{
		order.StatusPending:        true,
		order.StatusAccepted:       true,
		order.StatusPreparing:      true,
		order.StatusReadyForPickup: true,
	}

	for _, s := range allStatuses() {
		assert.Equal(t, cancellable[s], s.IsCancellable(), "status %s", s)
	}
}

func TestStatus_StringRoundTrip(t *testing.T) {
	for _, s := range allStatuses() {
		parsed, err := order.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.StatusFromString("unknown")
	require.Error(t, err)

	_, err = order.StatusFromString("shipped")
	require.Error(t, err)
}

func TestPaymentState_StringRoundTrip(t *testing.T) {
	states := []order.PaymentState{
		order.PaymentUnpaid,
		order.PaymentPaid,
		order.PaymentFailed,
		order.PaymentRefunded,
		order.PaymentPartiallyRefunded,
	}

	for _, s := range states {
		parsed, err := order.PaymentStateFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	require.Error(t, order.PaymentUnknown.Validate())
}
