package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/forge-cloud/archplan/pkg/models/api"
	"github.com/forge-cloud/archplan/pkg/models/domain"
	"github.com/forge-cloud/archplan/pkg/services/gateway"
	"github.com/forge-cloud/archplan/pkg/services/workflow"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GetDeploymentStatus(ctx context.Context, deploymentID string) (*domain.DeploymentStatus, error) {
	args := m.Called(ctx, deploymentID)
	if status := args.Get(0); status != nil {
		return status.(*domain.DeploymentStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerator) GeneratePlan(ctx context.Context, answers domain.Answers) (*domain.Plan, error) {
	args := m.Called(ctx, answers)
	if plan := args.Get(0); plan != nil {
		return plan.(*domain.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerator) Deploy(ctx context.Context, answers domain.Answers, creds domain.Credentials) (*domain.Plan, error) {
	args := m.Called(ctx, answers, creds)
	if plan := args.Get(0); plan != nil {
		return plan.(*domain.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerator) ImportInfrastructure(
	ctx context.Context,
	projectName string,
	servicesToImport []string,
	creds domain.Credentials,
) (*domain.ImportReport, error) {
	args := m.Called(ctx, projectName, servicesToImport, creds)
	if report := args.Get(0); report != nil {
		return report.(*domain.ImportReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerator) ApplySecurityPolicies(
	ctx context.Context,
	importID string,
	gapIDs []string,
	creds domain.Credentials,
) (*gateway.ApplyAck, error) {
	args := m.Called(ctx, importID, gapIDs, creds)
	if ack := args.Get(0); ack != nil {
		return ack.(*gateway.ApplyAck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerator) ValidateCredentials(ctx context.Context, creds domain.Credentials) (*domain.CredentialCheck, error) {
	args := m.Called(ctx, creds)
	if check := args.Get(0); check != nil {
		return check.(*domain.CredentialCheck), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestServer(t *testing.T, gw workflow.Gateway) *httptest.Server {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	pollerCfg := workflow.PollerConfig{Interval: time.Millisecond, FailureInterval: time.Millisecond}
	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Workflow: workflow.NewController(gw, pollerCfg),
			Logger:   logger,
		},
	}

	server := httptest.NewServer(ConfigureRouter(config))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeState(t *testing.T, resp *http.Response) api.WorkflowState {
	t.Helper()
	defer resp.Body.Close()
	var state api.WorkflowState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

func decodeDetail(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Detail
}

func strPtr(s string) *string { return &s }

func TestWebAPI_WizardFlow(t *testing.T) {
	gw := new(mockGenerator)
	gw.On("GeneratePlan", mock.Anything, mock.Anything).
		Return(&domain.Plan{EstimatedCost: 99, ResourcesPlanned: 5, IaCCode: "resource {}"}, nil).Once()

	server := newTestServer(t, gw)
	base := server.URL + "/api/v1"

	resp, err := http.Get(base + "/workflow")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	state := decodeState(t, resp)
	assert.Equal(t, "choose", state.Phase)

	resp = postJSON(t, base+"/workflow/new", nil)
	state = decodeState(t, resp)
	assert.Equal(t, "create", state.Phase)
	assert.Equal(t, 0, state.Step)

	// An invalid step cannot advance.
	resp = postJSON(t, base+"/workflow/advance", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, base+"/workflow/answers", api.UpdateAnswersRequest{
		ProjectName: strPtr("demo"),
	})
	state = decodeState(t, resp)
	require.NotNil(t, state.Answers)
	assert.Equal(t, "demo", state.Answers.ProjectName)

	resp = postJSON(t, base+"/workflow/advance", nil)
	assert.Equal(t, 1, decodeState(t, resp).Step)

	resp = postJSON(t, base+"/workflow/answers", api.UpdateAnswersRequest{
		ApplicationType:   strPtr("web-application"),
		ComputePreference: strPtr("vm"),
		TrafficVolume:     strPtr("medium"),
	})
	resp.Body.Close()
	resp = postJSON(t, base+"/workflow/advance", nil)
	resp.Body.Close()

	resp = postJSON(t, base+"/workflow/answers", api.UpdateAnswersRequest{
		DatabaseType:    strPtr("sql"),
		DataSensitivity: strPtr("internal"),
	})
	resp.Body.Close()
	resp = postJSON(t, base+"/workflow/advance", nil)
	resp.Body.Close()

	resp = postJSON(t, base+"/workflow/services/toggle", api.ToggleServiceRequest{
		Category: "compute", Service: "EC2",
	})
	state = decodeState(t, resp)
	assert.Equal(t, []string{"EC2"}, state.Answers.Services["compute"])

	resp = postJSON(t, base+"/workflow/advance", nil)
	assert.Equal(t, 4, decodeState(t, resp).Step)

	resp = postJSON(t, base+"/workflow/answers", api.UpdateAnswersRequest{
		BudgetRange: strPtr("1k-5k"),
	})
	resp.Body.Close()
	resp = postJSON(t, base+"/workflow/compliance/toggle", api.ToggleComplianceRequest{Tag: "SOC2"})
	state = decodeState(t, resp)
	assert.Equal(t, []string{"SOC2"}, state.Answers.ComplianceRequirements)

	resp = postJSON(t, base+"/workflow/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decodeState(t, resp)
	assert.Equal(t, "review", state.Phase)
	require.NotNil(t, state.Plan)
	assert.Equal(t, 5, state.Plan.ResourcesPlanned)

	resp, err = http.Get(base + "/workflow/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="demo-plan.md"`, resp.Header.Get("Content-Disposition"))
	doc, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "# demo AWS Architecture Plan")

	gw.AssertExpectations(t)
}

func TestWebAPI_ErrorMapping(t *testing.T) {
	gw := new(mockGenerator)
	server := newTestServer(t, gw)
	base := server.URL + "/api/v1"

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"deploy outside review", "/workflow/deploy", http.StatusBadRequest},
		{"retry outside deploy", "/workflow/retry", http.StatusBadRequest},
		{"apply outside import review", "/workflow/policies/apply", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, base+tt.path, nil)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	t.Run("export without plan", func(t *testing.T) {
		resp, err := http.Get(base + "/workflow/export")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(base+"/workflow/services/toggle", "application/json", bytes.NewReader([]byte("{")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "malformed request body", decodeDetail(t, resp))
	})
}

func TestWebAPI_CredentialRejection(t *testing.T) {
	gw := new(mockGenerator)
	gw.On("ImportInfrastructure", mock.Anything, "legacy", mock.Anything, mock.Anything).
		Return(nil, &gateway.CredentialError{Detail: "invalid access key"}).Once()

	server := newTestServer(t, gw)
	base := server.URL + "/api/v1"

	resp := postJSON(t, base+"/workflow/credentials", api.SetCredentialsRequest{
		AccessKeyID:     "AKIA",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, base+"/workflow/import", api.StartImportRequest{ProjectName: "legacy"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid access key", decodeDetail(t, resp))

	gw.AssertExpectations(t)
}

func TestWebAPI_Catalog(t *testing.T) {
	server := newTestServer(t, new(mockGenerator))

	resp, err := http.Get(server.URL + "/api/v1/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var catalog struct {
		ApplicationTypes  []struct{ Value, Label string } `json:"application_types"`
		ServiceCategories []string                        `json:"service_categories"`
		Services          map[string][]struct{ Value string } `json:"services"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&catalog))
	assert.NotEmpty(t, catalog.ApplicationTypes)
	assert.Equal(t,
		[]string{"compute", "storage", "database", "networking", "security", "monitoring"},
		catalog.ServiceCategories,
	)
	assert.NotEmpty(t, catalog.Services["compute"])
}
