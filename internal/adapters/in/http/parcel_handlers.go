package http

import (
	"context"
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
)

// CreateParcel handles POST /api/v1/parcels/create. The caller is the sender.
func (s *Server) CreateParcel(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req createParcelRequest
	if err = s.validator.Bind(c, "CreateParcelRequest", &req, false); err != nil {
		return err
	}
	receiver, err := kernel.UUIDFromString(req.Receiver)
	if err != nil {
		return err
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(parcelID, id, receiver, parcel.Details{
		Weight:          req.Weight,
		Fee:             req.Fee,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return err
	}
	if err = s.handlers.CreateParcel.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondCommitted(c, http.StatusCreated, "Parcel created successfully", parcelID, id)
}

// ListAllParcels handles GET /api/v1/parcels.
func (s *Server) ListAllParcels(c echo.Context) error {
	return s.listParcels(c, queries.ScopeAll, "All parcels retrieved successfully")
}

// ListMyParcels handles GET /api/v1/parcels/me.
func (s *Server) ListMyParcels(c echo.Context) error {
	return s.listParcels(c, queries.ScopeMine, "Your parcels retrieved successfully")
}

func (s *Server) listParcels(c echo.Context, scope queries.Scope, message string) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	q, err := queries.NewListParcelsQuery(id, scope, c.QueryParams())
	if err != nil {
		return err
	}
	res, err := s.handlers.ListParcels.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	items := make([]parcelResponse, len(res.Data))
	for i, v := range res.Data {
		items[i] = newParcelResponse(v)
	}
	data, err := project(items, res.Fields)
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, message, res.Meta, data)
}

// GetParcel handles GET /api/v1/parcels/:id.
func (s *Server) GetParcel(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	return s.respondParcel(c, http.StatusOK, "Parcel retrieved successfully", parcelID, id)
}

// GetStatusLog handles GET /api/v1/parcels/:id/status-log.
func (s *Server) GetStatusLog(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	q, err := queries.NewGetStatusLogQuery(parcelID, id)
	if err != nil {
		return err
	}
	log, err := s.handlers.GetStatusLog.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Status log retrieved successfully", newStatusLogResponse(log))
}

// UpdateParcel handles PATCH /api/v1/parcels/:id.
func (s *Server) UpdateParcel(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req updateParcelRequest
	if err = s.validator.Bind(c, "UpdateParcelRequest", &req, false); err != nil {
		return err
	}
	patch, err := req.patch()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateParcelCommand(parcelID, id, patch)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateParcel.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondCommitted(c, http.StatusOK, "Parcel updated successfully", parcelID, id)
}

// CancelParcel handles PATCH /api/v1/parcels/cancel/:id.
func (s *Server) CancelParcel(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelParcelCommand(parcelID, id)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelParcel.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondCommitted(c, http.StatusOK, "Parcel cancelled successfully", parcelID, id)
}

// DeleteParcel handles DELETE /api/v1/parcels/:id.
func (s *Server) DeleteParcel(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteParcelCommand(parcelID, id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteParcel.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Parcel deleted successfully", nil)
}

// respondParcel reads the parcel back as the caller sees it.
func (s *Server) respondParcel(c echo.Context, status int, message string, parcelID kernel.UUID, id identity.Identity) error {
	view, err := s.readParcel(c.Request().Context(), parcelID, id)
	if err != nil {
		return err
	}
	return respond(c, status, message, newParcelResponse(view))
}

// respondCommitted reports a mutation that has already committed. When the parcel can
// no longer be read back the response still succeeds and carries only the id.
func (s *Server) respondCommitted(c echo.Context, status int, message string, parcelID kernel.UUID, id identity.Identity) error {
	ctx := c.Request().Context()
	view, err := s.readParcel(ctx, parcelID, id)
	if err != nil {
		s.logger.WarnContext(ctx, "read back after commit failed",
			"parcel_id", parcelID.String(), "error", err)
		return respond(c, status, message, committedParcelResponse{ID: parcelID.String()})
	}
	return respond(c, status, message, newParcelResponse(view))
}

func (s *Server) readParcel(ctx context.Context, parcelID kernel.UUID, id identity.Identity) (queries.ParcelView, error) {
	q, err := queries.NewGetParcelQuery(parcelID, id)
	if err != nil {
		return queries.ParcelView{}, err
	}
	return s.handlers.GetParcel.Handle(ctx, q)
}
