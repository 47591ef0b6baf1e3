package lab

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
	api.POST("/lab-tests", h.Order, auth.RequireRole(auth.RoleDoctor))
	api.GET("/lab-tests/me", h.ListOwn, auth.RequireRole(auth.RolePatient))

	bench := api.Group("", auth.RequireRole(auth.RoleLab))
	bench.GET("/lab-tests/pending", h.ListPending)
	bench.PUT("/lab-tests/:id/result", h.SetResult)

	api.GET("/patients/:id/lab-tests", h.ListByPatient,
		auth.RequireRole(auth.RoleDoctor, auth.RoleLab, auth.RoleStaff, auth.RoleAdmin))
}

func (h *Handler) Order(c echo.Context) error {
	userID, err := account.CurrentUserID(c)
	if err != nil {
		return err
	}
	var t LabTest
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.OrderForDoctorUser(c.Request().Context(), userID, &t); err != nil {
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
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListPending(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPending(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type resultRequest struct {
	Result string `json:"result"`
}

func (h *Handler) SetResult(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req resultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	t, err := h.svc.SetResult(c.Request().Context(), id, req.Result)
	if err != nil {
		switch {
		case errors.Is(err, ErrTestNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "lab test not found")
		case errors.Is(err, ErrAlreadyResulted):
			return echo.NewHTTPError(http.StatusConflict, "lab test already resulted")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
		}
	}
	return c.JSON(http.StatusOK, t)
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
