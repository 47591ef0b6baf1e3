package admin

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

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
	// department picker for scheduling and staff forms
	read := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RoleStaff, auth.RoleAdmin))
	read.GET("/departments", h.ListDepartments)

	adm := api.Group("/admin", auth.RequireRole(auth.RoleAdmin))
	adm.GET("/departments", h.ListDepartments)
	adm.POST("/departments", h.CreateDepartment)
	adm.GET("/departments/:id", h.GetDepartment)
	adm.PUT("/departments/:id", h.UpdateDepartment)
	adm.DELETE("/departments/:id", h.DeleteDepartment)

	adm.GET("/staff", h.ListStaff)
	adm.POST("/staff", h.CreateStaff)
	adm.GET("/staff/:id", h.GetStaff)
	adm.PUT("/staff/:id", h.UpdateStaff)
	adm.DELETE("/staff/:id", h.DeleteStaff)
}

// -- Department Handlers --

func (h *Handler) CreateDepartment(c echo.Context) error {
	var d Department
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDepartment(c.Request().Context(), &d); err != nil {
		switch {
		case errors.Is(err, ErrDepartmentExists):
			return echo.NewHTTPError(http.StatusConflict, "department already exists")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
		}
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDepartment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.GetDepartment(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "department not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDepartments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDepartments(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateDepartment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var d Department
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = id
	if err := h.svc.UpdateDepartment(c.Request().Context(), &d); err != nil {
		switch {
		case errors.Is(err, ErrDepartmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "department not found")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
		}
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDepartment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteDepartment(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "department not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Staff Handlers --

func (h *Handler) CreateStaff(c echo.Context) error {
	var m StaffMember
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateStaff(c.Request().Context(), &m); err != nil {
		if errors.Is(err, ErrInvalid) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.GetStaff(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListStaff(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListStaff(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var m StaffMember
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m.ID = id
	if err := h.svc.UpdateStaff(c.Request().Context(), &m); err != nil {
		switch {
		case errors.Is(err, ErrStaffNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
		}
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteStaff(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
