package http

import (
	"errors"
	"net/http"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for parcel tracking and carrier hand-offs.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignParcelsHandler    commands.AssignParcelsCommandHandler
	reconcileParcelsHandler commands.ReconcileParcelsCommandHandler

	// Query handlers
	trackParcelHandler          queries.TrackParcelQueryHandler
	listCarrierShipmentsHandler queries.ListCarrierShipmentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignParcelsHandler commands.AssignParcelsCommandHandler,
	reconcileParcelsHandler commands.ReconcileParcelsCommandHandler,
	trackParcelHandler queries.TrackParcelQueryHandler,
	listCarrierShipmentsHandler queries.ListCarrierShipmentsQueryHandler,
) *Server {
	return &Server{
		assignParcelsHandler:        assignParcelsHandler,
		reconcileParcelsHandler:     reconcileParcelsHandler,
		trackParcelHandler:          trackParcelHandler,
		listCarrierShipmentsHandler: listCarrierShipmentsHandler,
	}
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/api/v1/parcels/:trackingCode/tracking", s.TrackParcel)
	e.POST("/api/v1/parcels/assignments", s.AssignParcels)
	e.POST("/api/v1/reconciliations", s.ReconcileParcels)
	e.GET("/api/v1/carrier/shipments", s.ListCarrierShipments)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// TrackParcel handles GET /api/v1/parcels/:trackingCode/tracking.
// Internal parcels are served from the stored tracking history; externally
// carried ones from the carrier's live feed.
func (s *Server) TrackParcel(ctx echo.Context) error {
	query, err := queries.NewTrackParcelQuery(ctx.Param("trackingCode"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking code: " + err.Error(),
		})
	}

	response, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to track parcel")
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignParcels handles POST /api/v1/parcels/assignments - hands a batch of
// parcels off to the external carrier and reports per-item outcomes.
func (s *Server) AssignParcels(ctx echo.Context) error {
	var request AssignParcelsRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewAssignParcelsCommand(request.TrackingCodes)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid assignment data: " + err.Error(),
		})
	}

	result, err := s.assignParcelsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to assign parcels")
	}

	return ctx.JSON(http.StatusOK, newAssignParcelsResponse(result))
}

// ReconcileParcels handles POST /api/v1/reconciliations - runs one
// reconciliation pass immediately instead of waiting for the schedule.
func (s *Server) ReconcileParcels(ctx echo.Context) error {
	cmd, err := commands.NewDefaultReconcileParcelsCommand()
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build reconciliation command",
		})
	}

	result, err := s.reconcileParcelsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to reconcile parcels")
	}

	return ctx.JSON(http.StatusOK, newReconcileParcelsResponse(result))
}

// ListCarrierShipments handles GET /api/v1/carrier/shipments - returns the
// carrier's shipment records as-is.
func (s *Server) ListCarrierShipments(ctx echo.Context) error {
	query := queries.NewListCarrierShipmentsQuery()

	shipments, err := s.listCarrierShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to list carrier shipments")
	}

	return ctx.JSON(http.StatusOK, shipments)
}

func (s *Server) errorResponse(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrCarrierUnavailable),
		errors.Is(err, errs.ErrCarrierMalformedResponse),
		errors.Is(err, errs.ErrCarrierRejected):
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
