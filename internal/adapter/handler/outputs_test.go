package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/http/middleware"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/metrics"
	"github.com/snakanz/adviceApp-sub002/pkg/config"
	"github.com/snakanz/adviceApp-sub002/pkg/jwt"
	"github.com/snakanz/adviceApp-sub002/pkg/validator"
)

type stubRegenerator struct {
	result     *entities.OutputsResult
	err        error
	userID     uuid.UUID
	meetingID  uuid.UUID
	transcript string
}

func (s *stubRegenerator) Regenerate(_ context.Context, userID, meetingID uuid.UUID, transcript string) (*entities.OutputsResult, error) {
	s.userID = userID
	s.meetingID = meetingID
	s.transcript = transcript
	return s.result, s.err
}

type outputsFixture struct {
	e      *echo.Echo
	jwt    *jwt.Manager
	svc    *stubRegenerator
	userID uuid.UUID
	token  string
}

func newOutputsFixture(t *testing.T, svc *stubRegenerator) *outputsFixture {
	t.Helper()
	manager := jwt.NewManager("secret", time.Minute)
	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID, "advisor@example.com")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics.NewPipelineMetrics(reg).ObserveRun(metrics.OutcomeOK)

	e := echo.New()
	e.Validator = validator.New()
	NewRouter(
		&config.Config{Server: config.ServerConfig{Environment: "test"}},
		nil,
		NewOutputsController(svc, nil),
		middleware.EchoAuth(manager),
		reg,
	).Setup(e)

	return &outputsFixture{e: e, jwt: manager, svc: svc, userID: userID, token: token}
}

func (f *outputsFixture) post(path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestRegenerateOutputs_Success(t *testing.T) {
	svc := &stubRegenerator{result: &entities.OutputsResult{
		QuickSummary: "Pension review.",
		ActionItems:  []string{"Send forms"},
	}}
	f := newOutputsFixture(t, svc)
	meetingID := uuid.New()

	rec := f.post("/v1/meetings/"+meetingID.String()+"/outputs", `{"transcript":"new text"}`, f.token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, f.userID, svc.userID)
	assert.Equal(t, meetingID, svc.meetingID)
	assert.Equal(t, "new text", svc.transcript)

	var resp struct {
		Code int                    `json:"code"`
		Data entities.OutputsResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "Pension review.", resp.Data.QuickSummary)
}

func TestRegenerateOutputs_EmptyBodyUsesStoredTranscript(t *testing.T) {
	svc := &stubRegenerator{result: &entities.OutputsResult{}}
	f := newOutputsFixture(t, svc)

	rec := f.post("/v1/meetings/"+uuid.NewString()+"/outputs", "", f.token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.transcript)
}

func TestRegenerateOutputs_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		svcErr     error
		noToken    bool
		wantStatus int
	}{
		{name: "no token", noToken: true, wantStatus: http.StatusUnauthorized},
		{name: "bad id", path: "/v1/meetings/not-a-uuid/outputs", wantStatus: http.StatusBadRequest},
		{name: "not found", svcErr: entities.ErrMeetingNotFound, wantStatus: http.StatusNotFound},
		{name: "other user", svcErr: entities.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "no transcript", svcErr: entities.ErrTranscriptMissing, wantStatus: http.StatusBadRequest},
		{name: "load failure", svcErr: fmt.Errorf("failed to load meeting: boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOutputsFixture(t, &stubRegenerator{err: tt.svcErr})
			path := tt.path
			if path == "" {
				path = "/v1/meetings/" + uuid.NewString() + "/outputs"
			}
			token := f.token
			if tt.noToken {
				token = ""
			}

			rec := f.post(path, `{}`, token)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	f := newOutputsFixture(t, &stubRegenerator{})

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"environment":"test"`)

	rec = httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "outputs_runs_total")
}

func TestRouter_UnwiredRoutes(t *testing.T) {
	e := echo.New()
	NewRouter(&config.Config{}, nil, nil, nil, nil).Setup(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/webhooks/recall", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/meetings/x/outputs", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
