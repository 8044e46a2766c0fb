package commands

import (
	"context"
	"sync"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"
	"parcel/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// defaultCarrierCallTimeout caps one carrier lookup so a single slow
// response cannot stall the whole reconciliation window.
const defaultCarrierCallTimeout = 20 * time.Second

// ReconciledParcel is one parcel whose status was realigned with the
// carrier's feed.
type ReconciledParcel struct {
	ParcelID     kernel.UUID
	TrackingCode string
	OldStatus    parcel.Status
	NewStatus    parcel.Status
}

// ReconcileError is one candidate whose carrier lookup or persistence
// failed.
type ReconcileError struct {
	ParcelID     kernel.UUID
	TrackingCode string
	Reason       string
}

// ReconcileParcelsResult reports a reconciliation pass. Candidates whose
// status already matched the carrier appear in neither list, which makes an
// immediate re-run come back empty on both.
type ReconcileParcelsResult struct {
	Updated []ReconciledParcel
	Errors  []ReconcileError
}

// ReconcileParcelsCommandHandler polls the carrier for every externally
// carried parcel in the window and realigns stored statuses with the feed.
// Per-item isolation is the core contract: one candidate's failure becomes
// an entry in Errors and never aborts the pass.
type ReconcileParcelsCommandHandler struct {
	uowFactory    UoWFactory
	carrierClient ports.CarrierClient
	statusHook    ports.StatusChangedHook
	concurrency   int
	callTimeout   time.Duration
}

// NewReconcileParcelsCommandHandler creates a reconciliation handler.
// statusHook may be nil when no collaborator listens for status changes.
func NewReconcileParcelsCommandHandler(
	uowFactory UoWFactory,
	carrierClient ports.CarrierClient,
	statusHook ports.StatusChangedHook,
) ReconcileParcelsCommandHandler {
	return ReconcileParcelsCommandHandler{
		uowFactory:    uowFactory,
		carrierClient: carrierClient,
		statusHook:    statusHook,
		concurrency:   defaultBatchConcurrency,
		callTimeout:   defaultCarrierCallTimeout,
	}
}

// Handle runs one reconciliation pass.
func (h *ReconcileParcelsCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileParcelsCommand,
) (ReconcileParcelsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileParcelsResult{}, err
	}

	since := time.Now().UTC().Add(-cmd.Window())
	reader := h.uowFactory.Create()
	candidates, err := reader.ParcelRepository().GetExternallyCarriedCreatedSince(ctx, since)
	if err != nil {
		return ReconcileParcelsResult{}, err
	}

	result := ReconcileParcelsResult{
		Updated: make([]ReconciledParcel, 0),
		Errors:  make([]ReconcileError, 0),
	}
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(h.concurrency)

	for _, candidate := range candidates {
		group.Go(func() error {
			updated, itemErr := h.reconcileOne(groupCtx, candidate)

			mu.Lock()
			defer mu.Unlock()
			if itemErr != nil {
				result.Errors = append(result.Errors, ReconcileError{
					ParcelID:     candidate.ID(),
					TrackingCode: candidate.TrackingCode(),
					Reason:       itemErr.Error(),
				})
				return nil
			}
			if updated != nil {
				result.Updated = append(result.Updated, *updated)
			}
			return nil
		})
	}

	_ = group.Wait()

	return result, nil
}

// reconcileOne realigns a single parcel with the carrier's feed. Returns
// (nil, nil) when nothing changed.
func (h *ReconcileParcelsCommandHandler) reconcileOne(
	ctx context.Context,
	candidate *parcel.Parcel,
) (*ReconciledParcel, error) {
	externalTrackingID := candidate.ExternalTrackingID()
	if externalTrackingID == nil {
		// The restore invariant makes this unreachable for externally
		// carried parcels.
		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, h.callTimeout)
	events, err := h.carrierClient.FetchEvents(callCtx, *externalTrackingID)
	cancel()
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	// The feed's own order is not trusted; reduce by event timestamp.
	latest := events[0]
	for _, event := range events[1:] {
		if event.OccurredAt.After(latest.OccurredAt) {
			latest = event
		}
	}

	oldStatus := candidate.Status()
	mapped := parcel.MapCarrierStatus(latest.Status)
	if mapped == oldStatus {
		return nil, nil
	}

	applied, err := h.applyStatus(ctx, candidate, oldStatus, mapped)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent writer changed the parcel first; this pass's view
		// is stale, so treat the item as a no-op.
		return nil, nil
	}

	if h.statusHook != nil {
		h.statusHook.OnStatusChanged(ctx, candidate, oldStatus, mapped)
	}

	return &ReconciledParcel{
		ParcelID:     candidate.ID(),
		TrackingCode: candidate.TrackingCode(),
		OldStatus:    oldStatus,
		NewStatus:    mapped,
	}, nil
}

// applyStatus writes the status change and its ledger event in one
// transaction, guarded against concurrent writers.
func (h *ReconcileParcelsCommandHandler) applyStatus(
	ctx context.Context,
	candidate *parcel.Parcel,
	oldStatus, newStatus parcel.Status,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	swapped, err := uow.ParcelRepository().UpdateStatusGuarded(
		ctx, candidate.ID(), oldStatus, newStatus)
	if err != nil {
		return false, err
	}
	if !swapped {
		return false, nil
	}

	err = uow.LedgerRepository().Append(
		ctx,
		candidate.ID(),
		candidate.TrackingCode(),
		newStatus,
		time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	if err = candidate.UpdateStatus(newStatus); err != nil {
		return false, err
	}

	return true, nil
}
