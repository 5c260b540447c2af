package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and hands out repositories bound to the running
// transaction. Client code must explicitly manage the transaction
// lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// RiderRepository returns a RiderRepository bound to the current
	// transaction.
	RiderRepository() RiderRepository

	// AssignmentRepository returns an AssignmentRepository bound to the
	// current transaction.
	AssignmentRepository() AssignmentRepository

	// PaymentRepository returns a PaymentRepository bound to the current
	// transaction.
	PaymentRepository() PaymentRepository

	// ZoneRepository returns a ZoneRepository bound to the current
	// transaction.
	ZoneRepository() ZoneRepository

	// AddressRepository returns an AddressRepository bound to the current
	// transaction.
	AddressRepository() AddressRepository
}
