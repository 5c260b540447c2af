package queries_test

import (
	"testing"

	"pharmadispatch/internal/core/application/usecases/queries"
	"pharmadispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetUnassignedOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetUnassignedOrdersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetUnassignedOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetUnassignedOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetUnassignedOrdersQueryIsNotConstructed)
}

func TestNewGetActiveAssignmentsQuery_Valid(t *testing.T) {
	query := queries.NewGetActiveAssignmentsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetActiveAssignmentsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveAssignmentsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveAssignmentsQueryIsNotConstructed)
}

func TestNewGetOrderTrackingQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		query, err := queries.NewGetOrderTrackingQuery(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("zero_order_id_fails", func(t *testing.T) {
		_, err := queries.NewGetOrderTrackingQuery(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("not_constructed_via_constructor", func(t *testing.T) {
		query := queries.GetOrderTrackingQuery{}
		err := query.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrGetOrderTrackingQueryIsNotConstructed)
	})
}
