package pharmacy

import (
	"errors"
	"net/http"

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
	api.POST("/prescriptions", h.Prescribe, auth.RequireRole(auth.RoleDoctor))
	api.GET("/prescriptions/me", h.ListOwn, auth.RequireRole(auth.RolePatient))

	counter := api.Group("", auth.RequireRole(auth.RolePharmacist))
	counter.GET("/prescriptions/pending", h.ListPending)
	counter.POST("/prescriptions/:id/dispense", h.Dispense)

	api.GET("/patients/:id/prescriptions", h.ListByPatient,
		auth.RequireRole(auth.RoleDoctor, auth.RolePharmacist, auth.RoleStaff, auth.RoleAdmin))
}

func (h *Handler) Prescribe(c echo.Context) error {
	userID, err := account.CurrentUserID(c)
	if err != nil {
		return err
	}
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.PrescribeForDoctorUser(c.Request().Context(), userID, &p); err != nil {
		switch {
		case errors.Is(err, ErrDoctorMissing):
			return echo.NewHTTPError(http.StatusNotFound, "doctor profile not found")
		case errors.Is(err, ErrPatientRowMissing):
			return echo.NewHTTPError(http.StatusNotFound, "no such patient")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
		}
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPending(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPending(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Dispense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := h.svc.Dispense(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrPrescriptionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		case errors.Is(err, ErrAlreadyDispensed):
			return echo.NewHTTPError(http.StatusConflict, "prescription already dispensed")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "dispense failed")
		}
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListOwn(c echo.Context) error {
	userID, err := account.CurrentUserID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListOwn(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrPatientMissing) {
			return echo.NewHTTPError(http.StatusNotFound, "patient profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
