package commands

import (
	"errors"
	"time"

	"parcel/internal/pkg/guard"
)

// DefaultReconciliationWindow is the trailing window reconciliation scans
// when no other duration is requested. Parcels older than this are assumed
// terminal.
const DefaultReconciliationWindow = 14 * 24 * time.Hour

var (
	ErrReconcileParcelsCommandIsNotConstructed = errors.New(
		"ReconcileParcelsCommand must be created via NewReconcileParcelsCommand constructor",
	)
	ErrWindowIsInvalid = errors.New("window must be greater than 0")
)

// ReconcileParcelsCommand represents one reconciliation pass over every
// externally carried parcel created within the trailing window.
type ReconcileParcelsCommand struct { //nolint:recvcheck //using for validation
	window time.Duration

	guard guard.ConstructorGuard
}

// NewReconcileParcelsCommand creates a reconciliation command for the given
// trailing window.
func NewReconcileParcelsCommand(window time.Duration) (ReconcileParcelsCommand, error) {
	command := ReconcileParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setWindow(window); err != nil {
		return ReconcileParcelsCommand{}, err
	}

	return command, nil
}

// NewDefaultReconcileParcelsCommand creates a reconciliation command with
// the default trailing window.
func NewDefaultReconcileParcelsCommand() (ReconcileParcelsCommand, error) {
	return NewReconcileParcelsCommand(DefaultReconciliationWindow)
}

// Validate ensures the command was created through the constructor.
func (c ReconcileParcelsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileParcelsCommandIsNotConstructed)
}

// Window returns the trailing window to scan.
func (c ReconcileParcelsCommand) Window() time.Duration {
	return c.window
}

func (c *ReconcileParcelsCommand) setWindow(window time.Duration) error {
	if window <= 0 {
		return ErrWindowIsInvalid
	}

	c.window = window
	return nil
}
