package tracking

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"
	"parcel/internal/pkg/errs"
)

// ErrLedgerIsNotConstructed is returned when a Ledger instance was not created
// through NewLedger or RestoreLedger.
var ErrLedgerIsNotConstructed = errors.New("Ledger must be created via NewLedger or RestoreLedger constructor")

// Event is a single entry in a parcel's status history: which status the
// parcel entered and when. Events are immutable once appended.
type Event struct {
	status     parcel.Status
	recordedAt time.Time
}

// NewEvent creates a validated history event.
func NewEvent(status parcel.Status, recordedAt time.Time) (Event, error) {
	if err := status.Validate(); err != nil {
		return Event{}, err
	}
	if recordedAt.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("recordedAt")
	}

	return Event{
		status:     status,
		recordedAt: recordedAt,
	}, nil
}

// Status returns the status the parcel entered.
func (e Event) Status() parcel.Status {
	return e.status
}

// RecordedAt returns when the status was recorded.
func (e Event) RecordedAt() time.Time {
	return e.recordedAt
}

// Ledger is the append-only status history of a single parcel. One ledger
// exists per parcel, created lazily on the first status write, and is never
// truncated.
//
// The event sequence preserves insertion order. Chronological order is a
// caller contract: callers append in increasing timestamp order and the
// ledger does not re-sort. When the contract is honored, insertion order
// equals chronological order and the last event's status equals the parcel's
// current status.
type Ledger struct {
	// parcelID identifies the owning parcel (1:1)
	parcelID kernel.UUID

	// trackingCode is a denormalized copy of the parcel's code, fixed at creation
	trackingCode string

	// events is the ordered, append-only status history
	events []Event

	isConstructed bool
}

// NewLedger creates an empty ledger for a parcel. Callers append the first
// event immediately after; an empty ledger is never persisted.
func NewLedger(parcelID kernel.UUID, trackingCode string) (*Ledger, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}

	return &Ledger{
		parcelID:      parcelID,
		trackingCode:  trackingCode,
		events:        make([]Event, 0, 1),
		isConstructed: true,
	}, nil
}

// RestoreLedger reconstructs a ledger from persistence, preserving the stored
// event order.
func RestoreLedger(parcelID kernel.UUID, trackingCode string, events []Event) (*Ledger, error) {
	ledger, err := NewLedger(parcelID, trackingCode)
	if err != nil {
		return nil, err
	}

	ledger.events = append(ledger.events, events...)
	return ledger, nil
}

// Validate ensures the Ledger was properly constructed.
func (l *Ledger) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLedgerIsNotConstructed
	}
	return nil
}

// ParcelID returns the owning parcel's identifier.
func (l *Ledger) ParcelID() kernel.UUID {
	return l.parcelID
}

// TrackingCode returns the denormalized tracking code.
func (l *Ledger) TrackingCode() string {
	return l.trackingCode
}

// Events returns a copy of the history in insertion order.
func (l *Ledger) Events() []Event {
	events := make([]Event, len(l.events))
	copy(events, l.events)
	return events
}

// LastStatus returns the status of the most recently appended event.
// The second return value is false when the ledger is empty.
func (l *Ledger) LastStatus() (parcel.Status, bool) {
	if len(l.events) == 0 {
		return parcel.Unknown, false
	}
	return l.events[len(l.events)-1].status, true
}

// Append adds an event to the end of the history. Events are never removed
// or reordered.
func (l *Ledger) Append(status parcel.Status, recordedAt time.Time) error {
	event, err := NewEvent(status, recordedAt)
	if err != nil {
		return err
	}

	l.events = append(l.events, event)
	return nil
}
