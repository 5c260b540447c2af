// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"pharmadispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest unit of work that covers
// the aggregates it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RiderRepoFactory provides access to the rider repository within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// ZoneRepoFactory provides access to the zone repository within a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// AddressRepoFactory provides access to the address repository within a transaction.
	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	// OrderUoW manages transactions for order operations. Order placement
	// also reads the delivery address to snapshot its coordinates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AddressRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RiderUoW manages transactions for rider-only operations.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	// RiderUoWFactory creates new rider unit of work instances.
	RiderUoWFactory interface {
		Create() RiderUoW
	}

	// ZoneUoW manages transactions for zone administration.
	ZoneUoW interface {
		TxManager
		ZoneRepoFactory
	}

	// ZoneUoWFactory creates new zone unit of work instances.
	ZoneUoWFactory interface {
		Create() ZoneUoW
	}

	// DispatchUoW manages transactions that coordinate orders, riders,
	// assignments and zones: the batching run and the rider-driven
	// assignment transitions.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		RiderRepoFactory
		AssignmentRepoFactory
		ZoneRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// PaymentUoW manages transactions that touch payments together with
	// their order's payment state.
	PaymentUoW interface {
		TxManager
		PaymentRepoFactory
		OrderRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// OrderCancelUoW manages the order cancellation transaction, which
	// must also inspect active assignments.
	OrderCancelUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
	}

	// OrderCancelUoWFactory creates new order cancellation unit of work instances.
	OrderCancelUoWFactory interface {
		Create() OrderCancelUoW
	}

	// AddressUoW manages transactions for address-only operations.
	AddressUoW interface {
		TxManager
		AddressRepoFactory
	}

	// AddressUoWFactory creates new address unit of work instances.
	AddressUoWFactory interface {
		Create() AddressUoW
	}
)
