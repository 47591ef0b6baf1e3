package patient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carewell/hms/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

func asPatient(req *http.Request, userID uuid.UUID) *http.Request {
	ident := &auth.Identity{SubjectID: userID.String(), Role: auth.RolePatient}
	return req.WithContext(auth.WithIdentity(req.Context(), ident))
}

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler()
	body := `{"user_id":"` + uuid.New().String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreatePatient(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if !strings.Contains(rec.Body.String(), "MRN") {
		t.Fatalf("body = %q, want an MRN", rec.Body.String())
	}
}

func TestHandler_GetOwnProfile(t *testing.T) {
	h, e := newTestHandler()
	userID := uuid.New()
	p := &Patient{UserID: userID}
	if err := h.svc.CreatePatient(httptest.NewRequest(http.MethodGet, "/", nil).Context(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}

	req := asPatient(httptest.NewRequest(http.MethodGet, "/", nil), userID)
	rec := httptest.NewRecorder()
	if err := h.GetOwnProfile(e.NewContext(req, rec)); err != nil {
		t.Fatalf("GetOwnProfile: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), p.MRN) {
		t.Fatalf("body = %q, want own MRN", rec.Body.String())
	}
}

func TestHandler_GetOwnProfile_NoProfileRow(t *testing.T) {
	h, e := newTestHandler()
	req := asPatient(httptest.NewRequest(http.MethodGet, "/", nil), uuid.New())

	err := h.GetOwnProfile(e.NewContext(req, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
	if he.Message != "patient profile not found" {
		t.Fatalf("message = %v", he.Message)
	}
}

func TestHandler_UpdateOwnProfile_KeepsMRN(t *testing.T) {
	h, e := newTestHandler()
	userID := uuid.New()
	p := &Patient{UserID: userID}
	if err := h.svc.CreatePatient(httptest.NewRequest(http.MethodGet, "/", nil).Context(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	originalMRN := p.MRN

	body := `{"phone":"555-0100","mrn":"MRN999999"}`
	req := asPatient(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body)), userID)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.UpdateOwnProfile(e.NewContext(req, rec)); err != nil {
		t.Fatalf("UpdateOwnProfile: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), originalMRN) {
		t.Fatalf("body = %q, MRN must not change", rec.Body.String())
	}
}

func TestHandler_GetPatient_InvalidID(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.GetPatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}
