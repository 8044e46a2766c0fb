package commands

import (
	"context"
	"errors"
	"sync"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// defaultBatchConcurrency bounds the number of carrier calls in flight for
// the batch handlers.
const defaultBatchConcurrency = 4

// CarrierCourierSource yields the id of the synthetic courier representing
// the external carrier. The provisioning handler is the canonical
// implementation, adapted in the composition root.
type CarrierCourierSource interface {
	GetOrCreateCarrierCourier(ctx context.Context) (kernel.UUID, error)
}

// AssignedParcel is one successful hand-off in a batch.
type AssignedParcel struct {
	TrackingCode       string
	ExternalTrackingID string
}

// FailedAssignment is one failed hand-off in a batch.
type FailedAssignment struct {
	TrackingCode string
	Reason       string
}

// AssignParcelsResult partitions the batch into successes and failures.
// Tracking codes with no matching local parcel appear in neither list.
type AssignParcelsResult struct {
	Succeeded []AssignedParcel
	Failed    []FailedAssignment
}

// AssignParcelsCommandHandler hands parcels off to the external carrier in
// bounded parallel, one transaction per item. A failed item leaves that
// parcel untouched and never aborts the rest of the batch.
type AssignParcelsCommandHandler struct {
	uowFactory     UoWFactory
	carrierClient  ports.CarrierClient
	carrierCourier CarrierCourierSource
	concurrency    int
}

// NewAssignParcelsCommandHandler creates a handler for batch carrier
// hand-offs.
func NewAssignParcelsCommandHandler(
	uowFactory UoWFactory,
	carrierClient ports.CarrierClient,
	carrierCourier CarrierCourierSource,
) AssignParcelsCommandHandler {
	return AssignParcelsCommandHandler{
		uowFactory:     uowFactory,
		carrierClient:  carrierClient,
		carrierCourier: carrierCourier,
		concurrency:    defaultBatchConcurrency,
	}
}

// Handle processes the batch. The carrier courier is provisioned up front;
// without it no hand-off can record a courier reference, so a provisioning
// failure fails the whole command rather than every item individually.
func (h *AssignParcelsCommandHandler) Handle(
	ctx context.Context,
	cmd AssignParcelsCommand,
) (AssignParcelsResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignParcelsResult{}, err
	}

	courierID, err := h.carrierCourier.GetOrCreateCarrierCourier(ctx)
	if err != nil {
		return AssignParcelsResult{}, err
	}

	result := AssignParcelsResult{
		Succeeded: make([]AssignedParcel, 0, len(cmd.TrackingCodes())),
		Failed:    make([]FailedAssignment, 0),
	}
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(h.concurrency)

	for _, trackingCode := range cmd.TrackingCodes() {
		group.Go(func() error {
			succeeded, failed := h.assignOne(groupCtx, trackingCode, courierID)

			mu.Lock()
			defer mu.Unlock()
			if succeeded != nil {
				result.Succeeded = append(result.Succeeded, *succeeded)
			}
			if failed != nil {
				result.Failed = append(result.Failed, *failed)
			}
			return nil
		})
	}

	// Workers never return errors; failures land in the result lists.
	_ = group.Wait()

	return result, nil
}

// assignOne processes a single tracking code. Codes with no local parcel
// yield neither a success nor a failure entry.
func (h *AssignParcelsCommandHandler) assignOne(
	ctx context.Context,
	trackingCode string,
	courierID kernel.UUID,
) (*AssignedParcel, *FailedAssignment) {
	reader := h.uowFactory.Create()
	aggregate, err := reader.ParcelRepository().GetByTrackingCode(ctx, trackingCode)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, &FailedAssignment{TrackingCode: trackingCode, Reason: err.Error()}
	}

	externalTrackingID, err := h.carrierClient.CreateShipment(ctx, ports.ShipmentRequest{
		FullName:    aggregate.Recipient().FullName(),
		Phone:       aggregate.Recipient().Phone(),
		City:        aggregate.Recipient().City(),
		Address:     aggregate.Recipient().Address(),
		Price:       aggregate.Price(),
		Product:     aggregate.Product(),
		Quantity:    1,
		Note:        aggregate.Note(),
		OpenPackage: aggregate.OpenPackage(),
	})
	if err != nil {
		return nil, &FailedAssignment{TrackingCode: trackingCode, Reason: err.Error()}
	}

	if err = h.recordHandOff(ctx, aggregate, externalTrackingID, courierID); err != nil {
		return nil, &FailedAssignment{TrackingCode: trackingCode, Reason: err.Error()}
	}

	return &AssignedParcel{
		TrackingCode:       trackingCode,
		ExternalTrackingID: externalTrackingID,
	}, nil
}

// recordHandOff persists the hand-off and its ledger event in one
// transaction.
func (h *AssignParcelsCommandHandler) recordHandOff(
	ctx context.Context,
	aggregate *parcel.Parcel,
	externalTrackingID string,
	courierID kernel.UUID,
) error {
	if err := aggregate.HandOffToCarrier(externalTrackingID, courierID); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ParcelRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	err := uow.LedgerRepository().Append(
		ctx,
		aggregate.ID(),
		aggregate.TrackingCode(),
		aggregate.Status(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
