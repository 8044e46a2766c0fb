package commands_test

import (
	"errors"
	"testing"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/parcel"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newExternalParcel creates a parcel already handed off to the carrier,
// optionally moved on to a later status.
func newExternalParcel(t *testing.T, trackingCode, externalID string, status parcel.Status) *parcel.Parcel {
	t.Helper()
	aggregate := newRegisteredParcel(t, trackingCode, "Casablanca")
	require.NoError(t, aggregate.HandOffToCarrier(externalID, kernel.NewUUID()))
	if status != parcel.HandedToCarrier {
		require.NoError(t, aggregate.UpdateStatus(status))
	}
	return aggregate
}

func newReconcileCommand(t *testing.T) commands.ReconcileParcelsCommand {
	t.Helper()
	cmd, err := commands.NewDefaultReconcileParcelsCommand()
	require.NoError(t, err)
	return cmd
}

func TestReconcileParcelsCommandHandler_Handle_UpdatesChangedParcel(t *testing.T) {
	ctx := t.Context()
	candidate := newExternalParcel(t, "TC-1", "EXT-1", parcel.HandedToCarrier)

	mockParcelRepo := new(MockParcelRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockClient := new(MockCarrierClient)
	mockHook := new(MockStatusChangedHook)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("ParcelRepository").Return(mockParcelRepo)
	mockUoW.On("LedgerRepository").Return(mockLedgerRepo)

	mockParcelRepo.On("GetExternallyCarriedCreatedSince", ctx, mock.AnythingOfType("time.Time")).
		Return([]*parcel.Parcel{candidate}, nil).Once()

	mockClient.On("FetchEvents", mock.Anything, "EXT-1").Return([]ports.CarrierEvent{
		{Status: "Livrée", OccurredAt: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)},
	}, nil).Once()

	mockUoW.On("Begin", mock.Anything).Return(nil).Once()
	mockParcelRepo.On("UpdateStatusGuarded", mock.Anything, candidate.ID(), parcel.HandedToCarrier, parcel.Delivered).
		Return(true, nil).Once()
	mockLedgerRepo.On("Append", mock.Anything, candidate.ID(), "TC-1", parcel.Delivered, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	mockUoW.On("Commit", mock.Anything).Return(nil).Once()
	mockUoW.On("Rollback", mock.Anything).Return(nil).Once()

	mockHook.On("OnStatusChanged", mock.Anything, candidate, parcel.HandedToCarrier, parcel.Delivered).Once()

	handler := commands.NewReconcileParcelsCommandHandler(mockFactory, mockClient, mockHook)

	result, err := handler.Handle(ctx, newReconcileCommand(t))
	require.NoError(t, err)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, "TC-1", result.Updated[0].TrackingCode)
	assert.Equal(t, parcel.HandedToCarrier, result.Updated[0].OldStatus)
	assert.Equal(t, parcel.Delivered, result.Updated[0].NewStatus)
	assert.Empty(t, result.Errors)

	assert.Equal(t, parcel.Delivered, candidate.Status())

	mockClient.AssertExpectations(t)
	mockParcelRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
	mockHook.AssertExpectations(t)
}

func TestReconcileParcelsCommandHandler_Handle_UnchangedStatusIsNoOp(t *testing.T) {
	ctx := t.Context()
	candidate := newExternalParcel(t, "TC-1", "EXT-1", parcel.Delivered)

	mockParcelRepo := new(MockParcelRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockClient := new(MockCarrierClient)
	mockHook := new(MockStatusChangedHook)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("ParcelRepository").Return(mockParcelRepo)

	mockParcelRepo.On("GetExternallyCarriedCreatedSince", ctx, mock.AnythingOfType("time.Time")).
		Return([]*parcel.Parcel{candidate}, nil).Once()
	mockClient.On("FetchEvents", mock.Anything, "EXT-1").Return([]ports.CarrierEvent{
		{Status: "Livrée", OccurredAt: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)},
	}, nil).Once()

	handler := commands.NewReconcileParcelsCommandHandler(mockFactory, mockClient, mockHook)

	result, err := handler.Handle(ctx, newReconcileCommand(t))
	require.NoError(t, err)

	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Errors)

	mockLedgerRepo.AssertNotCalled(t, "Append",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockHook.AssertNotCalled(t, "OnStatusChanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileParcelsCommandHandler_Handle_PerItemFailureIsolation(t *testing.T) {
	// Three candidates; the carrier call for the second fails. The first and
	// third still reconcile, and exactly one error is reported.
	ctx := t.Context()
	first := newExternalParcel(t, "TC-1", "EXT-1", parcel.HandedToCarrier)
	second := newExternalParcel(t, "TC-2", "EXT-2", parcel.HandedToCarrier)
	third := newExternalParcel(t, "TC-3", "EXT-3", parcel.HandedToCarrier)

	mockParcelRepo := new(MockParcelRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockClient := new(MockCarrierClient)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("ParcelRepository").Return(mockParcelRepo)
	mockUoW.On("LedgerRepository").Return(mockLedgerRepo)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit", mock.Anything).Return(nil)
	mockUoW.On("Rollback", mock.Anything).Return(nil)

	mockParcelRepo.On("GetExternallyCarriedCreatedSince", ctx, mock.AnythingOfType("time.Time")).
		Return([]*parcel.Parcel{first, second, third}, nil).Once()

	delivered := []ports.CarrierEvent{
		{Status: "Livrée", OccurredAt: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)},
	}
	mockClient.On("FetchEvents", mock.Anything, "EXT-1").Return(delivered, nil).Once()
	mockClient.On("FetchEvents", mock.Anything, "EXT-2").
		Return(nil, errs.NewCarrierUnavailableError("track", errors.New("connection refused"))).Once()
	mockClient.On("FetchEvents", mock.Anything, "EXT-3").Return(delivered, nil).Once()

	mockParcelRepo.On("UpdateStatusGuarded", mock.Anything, first.ID(), parcel.HandedToCarrier, parcel.Delivered).
		Return(true, nil).Once()
	mockParcelRepo.On("UpdateStatusGuarded", mock.Anything, third.ID(), parcel.HandedToCarrier, parcel.Delivered).
		Return(true, nil).Once()
	mockLedgerRepo.On("Append", mock.Anything, mock.Anything, mock.Anything, parcel.Delivered, mock.Anything).
		Return(nil).Twice()

	handler := commands.NewReconcileParcelsCommandHandler(mockFactory, mockClient, nil)

	result, err := handler.Handle(ctx, newReconcileCommand(t))
	require.NoError(t, err)

	require.Len(t, result.Updated, 2)
	updatedCodes := []string{result.Updated[0].TrackingCode, result.Updated[1].TrackingCode}
	assert.ElementsMatch(t, []string{"TC-1", "TC-3"}, updatedCodes)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "TC-2", result.Errors[0].TrackingCode)
	assert.NotEmpty(t, result.Errors[0].Reason)

	mockClient.AssertExpectations(t)
	mockParcelRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
}

func TestReconcileParcelsCommandHandler_Handle_PicksMaxTimestampEvent(t *testing.T) {
	// The feed's order is not trusted: the newest event appears first here,
	// then older ones. The newest must win.
	ctx := t.Context()
	candidate := newExternalParcel(t, "TC-1", "EXT-1", parcel.HandedToCarrier)

	mockParcelRepo := new(MockParcelRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockClient := new(MockCarrierClient)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("ParcelRepository").Return(mockParcelRepo)
	mockUoW.On("LedgerRepository").Return(mockLedgerRepo)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit", mock.Anything).Return(nil)
	mockUoW.On("Rollback", mock.Anything).Return(nil)

	mockParcelRepo.On("GetExternallyCarriedCreatedSince", ctx, mock.AnythingOfType("time.Time")).
		Return([]*parcel.Parcel{candidate}, nil).Once()

	base := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	mockClient.On("FetchEvents", mock.Anything, "EXT-1").Return([]ports.CarrierEvent{
		{Status: "En cours de livraison", OccurredAt: base.Add(time.Hour)},
		{Status: "Livrée", OccurredAt: base.Add(2 * time.Hour)},
		{Status: "Nouveau", OccurredAt: base},
	}, nil).Once()

	mockParcelRepo.On("UpdateStatusGuarded", mock.Anything, candidate.ID(), parcel.HandedToCarrier, parcel.Delivered).
		Return(true, nil).Once()
	mockLedgerRepo.On("Append", mock.Anything, candidate.ID(), "TC-1", parcel.Delivered, mock.Anything).
		Return(nil).Once()

	handler := commands.NewReconcileParcelsCommandHandler(mockFactory, mockClient, nil)

	result, err := handler.Handle(ctx, newReconcileCommand(t))
	require.NoError(t, err)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, parcel.Delivered, result.Updated[0].NewStatus)
}

func TestReconcileParcelsCommandHandler_Handle_StaleGuardIsNoOp(t *testing.T) {
	// A concurrent manual update changed the parcel between the read and
	// the write. The guarded swap misses; the item produces neither an
	// update nor an error.
	ctx := t.Context()
	candidate := newExternalParcel(t, "TC-1", "EXT-1", parcel.HandedToCarrier)

	mockParcelRepo := new(MockParcelRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockClient := new(MockCarrierClient)
	mockHook := new(MockStatusChangedHook)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("ParcelRepository").Return(mockParcelRepo)
	mockUoW.On("LedgerRepository").Return(mockLedgerRepo)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Rollback", mock.Anything).Return(nil)

	mockParcelRepo.On("GetExternallyCarriedCreatedSince", ctx, mock.AnythingOfType("time.Time")).
		Return([]*parcel.Parcel{candidate}, nil).Once()
	mockClient.On("FetchEvents", mock.Anything, "EXT-1").Return([]ports.CarrierEvent{
		{Status: "Livrée", OccurredAt: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)},
	}, nil).Once()
	mockParcelRepo.On("UpdateStatusGuarded", mock.Anything, candidate.ID(), parcel.HandedToCarrier, parcel.Delivered).
		Return(false, nil).Once()

	handler := commands.NewReconcileParcelsCommandHandler(mockFactory, mockClient, mockHook)

	result, err := handler.Handle(ctx, newReconcileCommand(t))
	require.NoError(t, err)

	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Errors)
	mockLedgerRepo.AssertNotCalled(t, "Append",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockHook.AssertNotCalled(t, "OnStatusChanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileParcelsCommandHandler_Handle_EmptyFeedIsNoOp(t *testing.T) {
	ctx := t.Context()
	candidate := newExternalParcel(t, "TC-1", "EXT-1", parcel.HandedToCarrier)

	mockParcelRepo := new(MockParcelRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockClient := new(MockCarrierClient)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("ParcelRepository").Return(mockParcelRepo)

	mockParcelRepo.On("GetExternallyCarriedCreatedSince", ctx, mock.AnythingOfType("time.Time")).
		Return([]*parcel.Parcel{candidate}, nil).Once()
	mockClient.On("FetchEvents", mock.Anything, "EXT-1").
		Return([]ports.CarrierEvent{}, nil).Once()

	handler := commands.NewReconcileParcelsCommandHandler(mockFactory, mockClient, nil)

	result, err := handler.Handle(ctx, newReconcileCommand(t))
	require.NoError(t, err)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Errors)
}

func TestReconcileParcelsCommandHandler_Handle_InvalidCommand(t *testing.T) {
	ctx := t.Context()
	var invalidCmd commands.ReconcileParcelsCommand

	handler := commands.NewReconcileParcelsCommandHandler(
		new(MockUoWFactory), new(MockCarrierClient), nil)

	_, err := handler.Handle(ctx, invalidCmd)
	require.ErrorIs(t, err, commands.ErrReconcileParcelsCommandIsNotConstructed)
}
