package lab

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carewell/hms/internal/platform/auth"
)

func newTestHandler() (*Handler, *mockResolver, *echo.Echo) {
	svc, resolver := newTestService()
	return NewHandler(svc), resolver, echo.New()
}

func asRole(req *http.Request, userID uuid.UUID, role auth.Role) *http.Request {
	ident := &auth.Identity{SubjectID: userID.String(), Role: role}
	return req.WithContext(auth.WithIdentity(req.Context(), ident))
}

func TestHandler_Order(t *testing.T) {
	h, resolver, e := newTestHandler()
	userID := uuid.New()
	resolver.doctors[userID] = uuid.New()

	body := `{"patient_id":"` + uuid.New().String() + `","test_name":"CBC"}`
	req := asRole(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), userID, auth.RoleDoctor)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Order(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Order: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if !strings.Contains(rec.Body.String(), StatusPending) {
		t.Fatalf("body = %q, want pending test", rec.Body.String())
	}
}

func TestHandler_Order_NoDoctorProfile(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"patient_id":"` + uuid.New().String() + `","test_name":"CBC"}`
	req := asRole(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), uuid.New(), auth.RoleDoctor)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	err := h.Order(e.NewContext(req, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestHandler_SetResult(t *testing.T) {
	h, resolver, e := newTestHandler()
	userID := uuid.New()
	resolver.doctors[userID] = uuid.New()

	lt := &LabTest{PatientID: uuid.New(), TestName: "CBC"}
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if err := h.svc.OrderForDoctorUser(ctx, userID, lt); err != nil {
		t.Fatalf("OrderForDoctorUser: %v", err)
	}

	req := asRole(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"result":"WBC 6.2"}`)), uuid.New(), auth.RoleLab)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(lt.ID.String())

	if err := h.SetResult(c); err != nil {
		t.Fatalf("SetResult: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), StatusCompleted) {
		t.Fatalf("body = %q, want completed test", rec.Body.String())
	}
}

func TestHandler_SetResult_DoubleResult(t *testing.T) {
	h, resolver, e := newTestHandler()
	userID := uuid.New()
	resolver.doctors[userID] = uuid.New()

	lt := &LabTest{PatientID: uuid.New(), TestName: "CBC"}
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if err := h.svc.OrderForDoctorUser(ctx, userID, lt); err != nil {
		t.Fatalf("OrderForDoctorUser: %v", err)
	}
	if _, err := h.svc.SetResult(ctx, lt.ID, "normal"); err != nil {
		t.Fatalf("SetResult: %v", err)
	}

	req := asRole(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"result":"rerun"}`)), uuid.New(), auth.RoleLab)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(lt.ID.String())

	err := h.SetResult(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("err = %v, want 409", err)
	}
}

func TestHandler_ListOwn_FlatRows(t *testing.T) {
	h, resolver, e := newTestHandler()
	doctorUser, patientUser, patientID := uuid.New(), uuid.New(), uuid.New()
	resolver.doctors[doctorUser] = uuid.New()
	resolver.patients[patientUser] = patientID

	lt := &LabTest{PatientID: patientID, TestName: "CBC"}
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if err := h.svc.OrderForDoctorUser(ctx, doctorUser, lt); err != nil {
		t.Fatalf("OrderForDoctorUser: %v", err)
	}

	req := asRole(httptest.NewRequest(http.MethodGet, "/", nil), patientUser, auth.RolePatient)
	rec := httptest.NewRecorder()
	if err := h.ListOwn(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "patient_mrn") {
		t.Fatalf("body = %q, want flat rows with joined patient fields", rec.Body.String())
	}
}

func TestHandler_ListOwn_NoProfile(t *testing.T) {
	h, _, e := newTestHandler()
	req := asRole(httptest.NewRequest(http.MethodGet, "/", nil), uuid.New(), auth.RolePatient)

	err := h.ListOwn(e.NewContext(req, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestHandler_Order_StoreFailure(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = errors.New("pq: connection reset by peer")
	resolver := newMockResolver()
	h := NewHandler(NewService(repo, resolver))
	e := echo.New()

	userID := uuid.New()
	resolver.doctors[userID] = uuid.New()

	body := `{"patient_id":"` + uuid.New().String() + `","test_name":"CBC"}`
	req := asRole(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), userID, auth.RoleDoctor)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	err := h.Order(e.NewContext(req, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("err = %v, want 500", err)
	}
	if msg, _ := he.Message.(string); strings.Contains(msg, "connection reset") {
		t.Fatalf("message %q leaks the store error", msg)
	}
}
