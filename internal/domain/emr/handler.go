package emr

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
	doc := api.Group("", auth.RequireRole(auth.RoleDoctor))
	doc.POST("/records", h.CreateRecord)
	doc.PUT("/records/:id", h.UpdateRecord)

	api.GET("/records/me", h.ListOwn, auth.RequireRole(auth.RolePatient))
	api.GET("/patients/:id/records", h.ListByPatient,
		auth.RequireRole(auth.RoleDoctor, auth.RoleStaff, auth.RoleAdmin))
}

func (h *Handler) CreateRecord(c echo.Context) error {
	userID, err := account.CurrentUserID(c)
	if err != nil {
		return err
	}
	var rec MedicalRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateForDoctorUser(c.Request().Context(), userID, &rec); err != nil {
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
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) UpdateRecord(c echo.Context) error {
	userID, err := account.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var rec MedicalRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec.ID = id
	if err := h.svc.UpdateForDoctorUser(c.Request().Context(), userID, &rec); err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "medical record not found")
		case errors.Is(err, ErrNotAuthor):
			return echo.NewHTTPError(http.StatusForbidden, "record was written by another doctor")
		case errors.Is(err, ErrDoctorMissing):
			return echo.NewHTTPError(http.StatusNotFound, "doctor profile not found")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
		}
	}
	return c.JSON(http.StatusOK, rec)
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
