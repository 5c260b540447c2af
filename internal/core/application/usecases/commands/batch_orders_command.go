package commands

import (
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/guard"
)

var ErrBatchOrdersCommandIsNotConstructed = errors.New(
	"BatchOrdersCommand must be created via NewBatchOrdersCommand constructor",
)

// BatchOrdersCommand represents a request to run one batching pass for a
// delivery zone: group the zone's ready orders into batches and offer each
// batch to an available rider.
type BatchOrdersCommand struct { //nolint:recvcheck //using for validation
	zoneID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBatchOrdersCommand creates a command to run batching for one zone.
func NewBatchOrdersCommand(zoneID kernel.UUID) (BatchOrdersCommand, error) {
	cmd := BatchOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setZoneID(zoneID); err != nil {
		return BatchOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBatchOrdersCommandIsNotConstructed)
}

// ZoneID returns the zone to batch for.
func (c BatchOrdersCommand) ZoneID() kernel.UUID { return c.zoneID }

func (c *BatchOrdersCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}
	c.zoneID = zoneID
	return nil
}
