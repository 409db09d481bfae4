package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-cloud/archplan/pkg/models/domain"
)

func testCreds() domain.Credentials {
	return domain.Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		Region:          "eu-west-1",
	}
}

func planAnswers() domain.Answers {
	a := domain.NewAnswers()
	a.ProjectName = "  demo  "
	a.ApplicationType = domain.AppWebApplication
	a.ComputePreference = "vm"
	a.TrafficVolume = "low"
	a.DatabaseType = "sql"
	a.DataSensitivity = "internal"
	a.BudgetRange = "under-1k"
	a.Services[domain.CategoryCompute] = []string{"EC2"}
	return a
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestGeneratePlan(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/production-infrastructure/create-from-scratch", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		got = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]any{
			"estimated_cost":        420.5,
			"resources_planned":     9,
			"security_features":     []string{"KMS encryption"},
			"compliance_frameworks": []string{"SOC2"},
			"iac_code":              "resource {}",
		})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	plan, err := client.GeneratePlan(context.Background(), planAnswers())
	require.NoError(t, err)

	assert.Equal(t, "demo", got["project_name"])
	assert.Equal(t, "terraform", got["deployment_tool"])
	assert.Equal(t, true, got["dry_run"])
	// Dry runs must never carry key material.
	assert.NotContains(t, got, "aws_credentials")

	questionnaire, ok := got["questionnaire"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "web-application", questionnaire["application_type"])
	assert.Equal(t, "high", questionnaire["security_level"])

	assert.Equal(t, 420.5, plan.EstimatedCost)
	assert.Equal(t, 9, plan.ResourcesPlanned)
	assert.Equal(t, []string{"KMS encryption"}, plan.SecurityFeatures)
	assert.Equal(t, "resource {}", plan.IaCCode)
}

func TestDeploy(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]any{
			"estimated_cost": 100.0,
			"deployment_id":  "dep-42",
		})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL, DeploymentTool: "cdk"})
	plan, err := client.Deploy(context.Background(), planAnswers(), testCreds())
	require.NoError(t, err)

	assert.Equal(t, false, got["dry_run"])
	assert.Equal(t, "cdk", got["deployment_tool"])

	creds, ok := got["aws_credentials"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "AKIAEXAMPLE", creds["access_key_id"])
	assert.Equal(t, "secret", creds["secret_access_key"])
	assert.Equal(t, "token", creds["session_token"])
	assert.Equal(t, "eu-west-1", creds["region"])

	assert.Equal(t, "dep-42", plan.DeploymentID)
}

func TestImportInfrastructure(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/production-infrastructure/import-existing", r.URL.Path)
		got = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]any{
			"import_id": "imp-7",
			"summary": map[string]any{
				"total_resources": 3,
				"security_score":  72,
				"security_gaps":   map[string]int{"critical": 1, "high": 0, "medium": 2, "low": 0},
				"compliance_status": map[string]any{
					"SOC2": map[string]any{"score": 72, "compliant": false, "status": "partial"},
				},
			},
			"security_gaps": []map[string]any{
				{"gap_id": "g-1", "severity": "critical", "can_auto_fix": true},
			},
			"iac_code": "imported {}",
		})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	report, err := client.ImportInfrastructure(context.Background(), "legacy", []string{"EC2", "S3"}, testCreds())
	require.NoError(t, err)

	assert.Equal(t, "legacy", got["project_name"])
	assert.Equal(t, []any{"EC2", "S3"}, got["services_to_import"])
	assert.Contains(t, got, "aws_credentials")

	assert.Equal(t, "imp-7", report.ImportID)
	assert.Equal(t, 72, report.Summary.SecurityScore)
	assert.Equal(t, 1, report.Summary.SecurityGaps.Critical)
	require.Len(t, report.Gaps, 1)
	assert.True(t, report.Gaps[0].CanAutoFix)
	assert.Equal(t, []string{"g-1"}, report.AutoFixableGapIDs())
}

func TestApplySecurityPolicies(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/production-infrastructure/apply-security-policies", r.URL.Path)
		got = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]any{"acknowledged": true, "deployment_id": "dep-policies"})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	ack, err := client.ApplySecurityPolicies(context.Background(), "imp-7", []string{"g-1", "g-3"}, testCreds())
	require.NoError(t, err)

	assert.Equal(t, "imp-7", got["deployment_id"])
	assert.Equal(t, []any{"g-1", "g-3"}, got["security_gap_ids"])
	assert.Contains(t, got, "aws_credentials")
	assert.True(t, ack.Acknowledged)
	assert.Equal(t, "dep-policies", ack.DeploymentID)
}

func TestValidateCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/production-infrastructure/validate-aws-credentials", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "AKIAEXAMPLE", q.Get("access_key_id"))
		assert.Equal(t, "eu-west-1", q.Get("region"))
		json.NewEncoder(w).Encode(map[string]any{"valid": true, "account_id": "123456789012"})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	check, err := client.ValidateCredentials(context.Background(), testCreds())
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Equal(t, "123456789012", check.AccountID)
}

func TestGetDeploymentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/production-infrastructure/deployment-status/dep-42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"status":              "running",
			"progress_percentage": 62.5,
			"current_step":        "Creating VPC",
			"logs":                []string{"vpc pending"},
		})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	status, err := client.GetDeploymentStatus(context.Background(), "dep-42")
	require.NoError(t, err)
	assert.Equal(t, domain.DeploymentRunning, status.Status)
	assert.Equal(t, 63, status.Progress)
	assert.Equal(t, "Creating VPC", status.CurrentStep)
	assert.False(t, status.Status.Terminal())
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("unreachable backend wraps ErrNetwork", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := NewClient(Options{BaseURL: srv.URL})
		_, err := client.GeneratePlan(context.Background(), planAnswers())
		assert.ErrorIs(t, err, ErrNetwork)
	})

	t.Run("structured error becomes BackendError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "budget_range is required"})
		}))
		defer srv.Close()

		client := NewClient(Options{BaseURL: srv.URL})
		_, err := client.GeneratePlan(context.Background(), planAnswers())

		var backendErr *BackendError
		require.ErrorAs(t, err, &backendErr)
		assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
		assert.Equal(t, "budget_range is required", backendErr.Detail)
	})

	t.Run("401 on credentialed call becomes CredentialError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid access key"})
		}))
		defer srv.Close()

		client := NewClient(Options{BaseURL: srv.URL})
		_, err := client.Deploy(context.Background(), planAnswers(), testCreds())

		var credErr *CredentialError
		require.ErrorAs(t, err, &credErr)
		assert.Equal(t, "invalid access key", credErr.Detail)
	})

	t.Run("401 on dry run stays a BackendError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "nope"})
		}))
		defer srv.Close()

		client := NewClient(Options{BaseURL: srv.URL})
		_, err := client.GeneratePlan(context.Background(), planAnswers())

		var credErr *CredentialError
		assert.False(t, errors.As(err, &credErr))
		var backendErr *BackendError
		assert.ErrorAs(t, err, &backendErr)
	})

	t.Run("unstructured body wraps ErrNetwork", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		client := NewClient(Options{BaseURL: srv.URL})
		_, err := client.GeneratePlan(context.Background(), planAnswers())
		assert.ErrorIs(t, err, ErrNetwork)
	})
}
