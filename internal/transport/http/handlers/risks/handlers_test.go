package riskshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"grc/internal/domain/auth"
	"grc/internal/domain/risks"
	"grc/internal/transport/http/middleware"
)

const testSecret = "handler-test-secret"

type stubStore struct {
	byID map[string]risks.RiskAssessment
}

func (s *stubStore) Create(_ context.Context, assessment risks.RiskAssessment) (string, error) {
	return "new-id", nil
}

func (s *stubStore) Get(_ context.Context, riskID string) (risks.RiskAssessment, error) {
	assessment, ok := s.byID[riskID]
	if !ok {
		return risks.RiskAssessment{}, risks.ErrRiskNotFound
	}
	return assessment, nil
}

func (s *stubStore) List(_ context.Context, _ risks.Filter, _, _ int) ([]risks.RiskAssessment, error) {
	out := make([]risks.RiskAssessment, 0, len(s.byID))
	for _, assessment := range s.byID {
		out = append(out, assessment)
	}
	return out, nil
}

func (s *stubStore) Count(_ context.Context, _ risks.Filter) (int, error) {
	return len(s.byID), nil
}

func (s *stubStore) ListAll(_ context.Context) ([]risks.RiskAssessment, error) {
	return s.List(context.Background(), risks.Filter{}, 0, 0)
}

func (s *stubStore) Update(_ context.Context, assessment risks.RiskAssessment) error {
	s.byID[assessment.ID] = assessment
	return nil
}

func (s *stubStore) UpdateStatus(_ context.Context, riskID, status string) error {
	assessment := s.byID[riskID]
	assessment.Status = status
	s.byID[riskID] = assessment
	return nil
}

func newTestRouter(t *testing.T, store *stubStore) http.Handler {
	t.Helper()
	handler := NewHandler(risks.NewService(store, nil), store, auth.NewPermissions(), nil)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	router.Route("/api/v1", handler.RegisterRoutes)
	return router
}

func authedRequest(t *testing.T, method, target, role string, body []byte) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Role: role, SessionID: "s1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateRejectsOutOfScaleScores(t *testing.T) {
	router := newTestRouter(t, &stubStore{byID: map[string]risks.RiskAssessment{}})

	body := []byte(`{"title":"Vendor breach","likelihood":7,"impact":3}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/v1/risks/", auth.RoleComplianceOfficer, body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error code, got %q", payload.Error.Code)
	}
}

func TestChangeStatusRejectsIllegalEdge(t *testing.T) {
	store := &stubStore{byID: map[string]risks.RiskAssessment{
		"r1": {ID: "r1", Title: "Stale backups", Likelihood: 3, Impact: 4, Status: risks.StatusClosed},
	}}
	router := newTestRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/v1/risks/r1/status", auth.RoleComplianceOfficer, []byte(`{"status":"assessed"}`)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "invalid_transition" {
		t.Fatalf("expected invalid_transition code, got %q", payload.Error.Code)
	}
	if store.byID["r1"].Status != risks.StatusClosed {
		t.Fatal("closed risk must stay closed")
	}
}

func TestGetReturnsDerivedScores(t *testing.T) {
	residual := 2
	store := &stubStore{byID: map[string]risks.RiskAssessment{
		"r1": {
			ID: "r1", Title: "Unpatched edge device", Likelihood: 5, Impact: 5,
			ResidualLikelihood: &residual, ResidualImpact: &residual,
			Status: risks.StatusMitigated,
		},
	}}
	router := newTestRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/v1/risks/r1", auth.RoleViewer, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Data struct {
			RiskScore         int    `json:"riskScore"`
			SeverityBand      string `json:"severityBand"`
			ResidualRiskScore int    `json:"residualRiskScore"`
			ResidualBand      string `json:"residualSeverityBand"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.RiskScore != 25 || payload.Data.SeverityBand != risks.BandCritical {
		t.Fatalf("unexpected inherent score: %+v", payload.Data)
	}
	if payload.Data.ResidualRiskScore != 4 || payload.Data.ResidualBand != risks.BandLow {
		t.Fatalf("unexpected residual score: %+v", payload.Data)
	}
}

func TestViewerCannotMutate(t *testing.T) {
	router := newTestRouter(t, &stubStore{byID: map[string]risks.RiskAssessment{}})

	body := []byte(`{"title":"Shadow IT","likelihood":2,"impact":2}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/v1/risks/", auth.RoleViewer, body))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}
