package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carewell/hms/pkg/pagination"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

func TestHandler_CreateDepartment(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Cardiology"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreateDepartment(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestHandler_CreateDepartment_Blank(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	err := h.CreateDepartment(e.NewContext(req, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestHandler_ListDepartments_Sorted(t *testing.T) {
	h, e := newTestHandler()
	for _, name := range []string{"Radiology", "Cardiology"} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+name+`"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if err := h.CreateDepartment(e.NewContext(req, httptest.NewRecorder())); err != nil {
			t.Fatalf("CreateDepartment(%s): %v", name, err)
		}
	}

	rec := httptest.NewRecorder()
	if err := h.ListDepartments(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("ListDepartments: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp pagination.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	raw, _ := json.Marshal(resp.Data)
	var items []Department
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Cardiology" || items[1].Name != "Radiology" {
		t.Fatalf("items = %+v, want name-ascending order", items)
	}
}

func TestHandler_GetDepartment_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetDepartment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestHandler_UpdateDepartment(t *testing.T) {
	h, e := newTestHandler()
	d := &Department{Name: "Cardiology"}
	if err := h.svc.CreateDepartment(httptest.NewRequest(http.MethodGet, "/", nil).Context(), d); err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"Cardiac Care"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())

	if err := h.UpdateDepartment(c); err != nil {
		t.Fatalf("UpdateDepartment: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHandler_DeleteDepartment_InvalidID(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.DeleteDepartment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestHandler_CreateStaff(t *testing.T) {
	h, e := newTestHandler()
	body := `{"user_id":"` + uuid.New().String() + `","designation":"Receptionist"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreateStaff(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}
