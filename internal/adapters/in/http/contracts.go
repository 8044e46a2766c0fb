package http

import "parcel/internal/core/application/usecases/commands"

// Error is the uniform error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssignParcelsRequest is the body of a batch hand-off request.
type AssignParcelsRequest struct {
	TrackingCodes []string `json:"trackingCodes"`
}

// AssignedParcel is one successful hand-off in the batch report.
type AssignedParcel struct {
	TrackingCode       string `json:"trackingCode"`
	ExternalTrackingID string `json:"externalTrackingId"`
}

// FailedAssignment is one failed hand-off in the batch report.
type FailedAssignment struct {
	TrackingCode string `json:"trackingCode"`
	Reason       string `json:"reason"`
}

// AssignParcelsResponse reports per-item outcomes of a batch hand-off.
// Tracking codes with no matching parcel appear in neither list.
type AssignParcelsResponse struct {
	Succeeded []AssignedParcel   `json:"succeeded"`
	Failed    []FailedAssignment `json:"failed"`
}

func newAssignParcelsResponse(result commands.AssignParcelsResult) AssignParcelsResponse {
	response := AssignParcelsResponse{
		Succeeded: make([]AssignedParcel, len(result.Succeeded)),
		Failed:    make([]FailedAssignment, len(result.Failed)),
	}
	for i, item := range result.Succeeded {
		response.Succeeded[i] = AssignedParcel{
			TrackingCode:       item.TrackingCode,
			ExternalTrackingID: item.ExternalTrackingID,
		}
	}
	for i, item := range result.Failed {
		response.Failed[i] = FailedAssignment{
			TrackingCode: item.TrackingCode,
			Reason:       item.Reason,
		}
	}
	return response
}

// ReconciledParcel is one status change applied by a reconciliation pass.
type ReconciledParcel struct {
	TrackingCode string `json:"trackingCode"`
	OldStatus    string `json:"oldStatus"`
	NewStatus    string `json:"newStatus"`
}

// ReconcileError is one candidate that could not be reconciled.
type ReconcileError struct {
	TrackingCode string `json:"trackingCode"`
	Reason       string `json:"reason"`
}

// ReconcileParcelsResponse reports the outcome of one reconciliation pass.
type ReconcileParcelsResponse struct {
	Updated []ReconciledParcel `json:"updated"`
	Errors  []ReconcileError   `json:"errors"`
}

func newReconcileParcelsResponse(result commands.ReconcileParcelsResult) ReconcileParcelsResponse {
	response := ReconcileParcelsResponse{
		Updated: make([]ReconciledParcel, len(result.Updated)),
		Errors:  make([]ReconcileError, len(result.Errors)),
	}
	for i, item := range result.Updated {
		response.Updated[i] = ReconciledParcel{
			TrackingCode: item.TrackingCode,
			OldStatus:    item.OldStatus.String(),
			NewStatus:    item.NewStatus.String(),
		}
	}
	for i, item := range result.Errors {
		response.Errors[i] = ReconcileError{
			TrackingCode: item.TrackingCode,
			Reason:       item.Reason,
		}
	}
	return response
}
