package billing

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
	desk := api.Group("", auth.RequireRole(auth.RoleStaff, auth.RoleAdmin))
	desk.POST("/invoices", h.CreateInvoice)
	desk.GET("/invoices", h.List)

	api.GET("/invoices/me", h.ListOwn, auth.RequireRole(auth.RolePatient))
	api.POST("/invoices/:id/pay", h.Pay,
		auth.RequireRole(auth.RolePatient, auth.RoleStaff, auth.RoleAdmin))
}

func (h *Handler) CreateInvoice(c echo.Context) error {
	var inv Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateInvoice(c.Request().Context(), &inv); err != nil {
		switch {
		case errors.Is(err, ErrPatientRowMissing):
			return echo.NewHTTPError(http.StatusNotFound, "no such patient")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
		}
	}
	return c.JSON(http.StatusCreated, inv)
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

func (h *Handler) Pay(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}

	var inv *Invoice
	if ident.Role.Equals(auth.RolePatient) {
		userID, err := account.CurrentUserID(c)
		if err != nil {
			return err
		}
		inv, err = h.svc.PayOwn(c.Request().Context(), userID, id)
		if err != nil {
			return payError(err)
		}
	} else {
		inv, err = h.svc.Pay(c.Request().Context(), id)
		if err != nil {
			return payError(err)
		}
	}
	return c.JSON(http.StatusOK, inv)
}

func payError(err error) error {
	switch {
	case errors.Is(err, ErrInvoiceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
	case errors.Is(err, ErrPatientMissing):
		return echo.NewHTTPError(http.StatusNotFound, "patient profile not found")
	case errors.Is(err, ErrNotYours):
		return echo.NewHTTPError(http.StatusForbidden, "invoice belongs to another patient")
	case errors.Is(err, ErrAlreadyPaid):
		return echo.NewHTTPError(http.StatusConflict, "invoice already paid")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "payment failed")
	}
}
