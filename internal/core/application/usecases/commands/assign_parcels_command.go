package commands

import (
	"errors"
	"strings"

	"parcel/internal/pkg/guard"
)

var (
	ErrAssignParcelsCommandIsNotConstructed = errors.New(
		"AssignParcelsCommand must be created via NewAssignParcelsCommand constructor",
	)
	ErrTrackingCodesAreRequired = errors.New("at least one tracking code is required")
)

// AssignParcelsCommand represents a request to hand a batch of parcels off
// to the external carrier. Codes are deduplicated; blank entries are
// dropped.
type AssignParcelsCommand struct { //nolint:recvcheck //using for validation
	trackingCodes []string

	guard guard.ConstructorGuard
}

// NewAssignParcelsCommand creates a command for a batch hand-off.
// The input is treated as a set: duplicates and blank strings are removed,
// and the command fails when nothing remains.
func NewAssignParcelsCommand(trackingCodes []string) (AssignParcelsCommand, error) {
	command := AssignParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTrackingCodes(trackingCodes); err != nil {
		return AssignParcelsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignParcelsCommand) Validate() error {
	return c.guard.Validate(ErrAssignParcelsCommandIsNotConstructed)
}

// TrackingCodes returns a copy of the deduplicated tracking codes.
func (c AssignParcelsCommand) TrackingCodes() []string {
	codes := make([]string, len(c.trackingCodes))
	copy(codes, c.trackingCodes)
	return codes
}

func (c *AssignParcelsCommand) setTrackingCodes(trackingCodes []string) error {
	seen := make(map[string]struct{}, len(trackingCodes))
	codes := make([]string, 0, len(trackingCodes))
	for _, raw := range trackingCodes {
		code := strings.TrimSpace(raw)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return ErrTrackingCodesAreRequired
	}

	c.trackingCodes = codes
	return nil
}
