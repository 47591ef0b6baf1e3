package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carewell/hms/internal/domain/account"
	"github.com/carewell/hms/internal/platform/auth"
	"github.com/carewell/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	self := api.Group("", auth.RequireRole(auth.RolePatient))
	self.POST("/appointments", h.Book)
	self.GET("/appointments/me", h.ListOwn)

	api.GET("/appointments/assigned", h.ListAssigned, auth.RequireRole(auth.RoleDoctor))

	desk := api.Group("", auth.RequireRole(auth.RoleStaff, auth.RoleAdmin))
	desk.GET("/appointments", h.List)

	api.PUT("/appointments/:id/status", h.UpdateStatus,
		auth.RequireRole(auth.RoleDoctor, auth.RoleStaff, auth.RoleAdmin))
	api.DELETE("/appointments/:id", h.Cancel,
		auth.RequireRole(auth.RolePatient, auth.RoleStaff, auth.RoleAdmin))
}

type bookRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      *string   `json:"reason,omitempty"`
}

func (h *Handler) Book(c echo.Context) error {
	userID, err := account.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.svc.Book(c.Request().Context(), userID, req.DoctorID, req.ScheduledAt, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrPatientMissing):
			return echo.NewHTTPError(http.StatusNotFound, "patient profile not found")
		case errors.Is(err, ErrDoctorMissing):
			return echo.NewHTTPError(http.StatusNotFound, "no such doctor")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "booking failed")
		}
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListOwn(c echo.Context) error {
	userID, err := account.CurrentUserID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListForPatientUser(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrPatientMissing) {
			return echo.NewHTTPError(http.StatusNotFound, "patient profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListAssigned(c echo.Context) error {
	userID, err := account.CurrentUserID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListForDoctorUser(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrDoctorMissing) {
			return echo.NewHTTPError(http.StatusNotFound, "doctor profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		case errors.Is(err, ErrBadTransition):
			return echo.NewHTTPError(http.StatusConflict, "appointment is not open for a status change")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
		}
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}

	if ident.Role.Equals(auth.RolePatient) {
		userID, err := account.CurrentUserID(c)
		if err != nil {
			return err
		}
		err = h.svc.CancelOwn(c.Request().Context(), userID, id)
		switch {
		case err == nil:
			return c.NoContent(http.StatusNoContent)
		case errors.Is(err, ErrNotYours):
			return echo.NewHTTPError(http.StatusForbidden, "appointment belongs to another patient")
		case errors.Is(err, ErrPatientMissing):
			return echo.NewHTTPError(http.StatusNotFound, "patient profile not found")
		case errors.Is(err, ErrAppointmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		case errors.Is(err, ErrBadTransition):
			return echo.NewHTTPError(http.StatusConflict, "appointment is not open for a status change")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "cancel failed")
		}
	}

	err = h.svc.Cancel(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, ErrAppointmentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrBadTransition):
		return echo.NewHTTPError(http.StatusConflict, "appointment is not open for a status change")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "cancel failed")
	}
}
