// Package gateway is the thin request/response layer over the architecture
// generator's HTTP API. Calls are stateless and never retried here; retry
// policy belongs to the deployment poller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/forge-cloud/archplan/pkg/adapters"
	"github.com/forge-cloud/archplan/pkg/models/api"
	"github.com/forge-cloud/archplan/pkg/models/domain"
)

const basePath = "/production-infrastructure"

// Client talks to one generator endpoint.
type Client struct {
	baseURL        string
	deploymentTool string
	httpClient     *http.Client
}

// Options configure a Client.
type Options struct {
	// BaseURL is the generator's root URL, e.g. http://localhost:8000.
	BaseURL string

	// DeploymentTool selects the IaC flavour requested from the generator.
	// Defaults to "terraform".
	DeploymentTool string

	// HTTPClient overrides the transport; nil gets a 30 s timeout client.
	HTTPClient *http.Client
}

// NewClient creates a generator client.
func NewClient(opts Options) *Client {
	if opts.DeploymentTool == "" {
		opts.DeploymentTool = "terraform"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:        opts.BaseURL,
		deploymentTool: opts.DeploymentTool,
		httpClient:     opts.HTTPClient,
	}
}

// GeneratePlan requests a dry-run plan. Credentials are never attached to a
// dry run.
func (c *Client) GeneratePlan(ctx context.Context, answers domain.Answers) (*domain.Plan, error) {
	body := api.CreateFromScratchRequest{
		ProjectName:    answers.TrimmedProjectName(),
		Description:    answers.Description,
		DeploymentTool: c.deploymentTool,
		DryRun:         true,
		Questionnaire:  adapters.MapDomainAnswersToQuestionnaire(answers),
	}

	var plan api.Plan
	if err := c.post(ctx, basePath+"/create-from-scratch", body, &plan, false); err != nil {
		return nil, err
	}
	return adapters.MapAPIPlanToDomain(&plan), nil
}

// Deploy requests a real deployment; the returned plan carries the
// deployment id the poller follows.
func (c *Client) Deploy(
	ctx context.Context,
	answers domain.Answers,
	creds domain.Credentials,
) (*domain.Plan, error) {
	body := api.CreateFromScratchRequest{
		ProjectName:    answers.TrimmedProjectName(),
		Description:    answers.Description,
		DeploymentTool: c.deploymentTool,
		DryRun:         false,
		Questionnaire:  adapters.MapDomainAnswersToQuestionnaire(answers),
		AWSCredentials: adapters.MapDomainCredentialsToAPI(creds),
	}

	var plan api.Plan
	if err := c.post(ctx, basePath+"/create-from-scratch", body, &plan, true); err != nil {
		return nil, err
	}
	return adapters.MapAPIPlanToDomain(&plan), nil
}

// ImportInfrastructure scans existing AWS resources into an import report.
func (c *Client) ImportInfrastructure(
	ctx context.Context,
	projectName string,
	servicesToImport []string,
	creds domain.Credentials,
) (*domain.ImportReport, error) {
	body := api.ImportExistingRequest{
		ProjectName:      projectName,
		ServicesToImport: servicesToImport,
		AWSCredentials:   adapters.MapDomainCredentialsToAPI(creds),
	}

	var report api.ImportReport
	if err := c.post(ctx, basePath+"/import-existing", body, &report, true); err != nil {
		return nil, err
	}
	return adapters.MapAPIImportReportToDomain(&report), nil
}

// ApplyAck acknowledges a policy application; DeploymentID, when present,
// is the job the poller should follow.
type ApplyAck struct {
	Acknowledged bool
	DeploymentID string
}

// ApplySecurityPolicies asks the generator to remediate the given gaps.
func (c *Client) ApplySecurityPolicies(
	ctx context.Context,
	importID string,
	gapIDs []string,
	creds domain.Credentials,
) (*ApplyAck, error) {
	body := api.ApplyPoliciesRequest{
		DeploymentID:   importID,
		SecurityGapIDs: gapIDs,
		AWSCredentials: adapters.MapDomainCredentialsToAPI(creds),
	}

	var resp api.ApplyPoliciesResponse
	if err := c.post(ctx, basePath+"/apply-security-policies", body, &resp, true); err != nil {
		return nil, err
	}
	return &ApplyAck{Acknowledged: resp.Acknowledged, DeploymentID: resp.DeploymentID}, nil
}

// ValidateCredentials checks credentials against the generator. Advisory
// only: a deploy is allowed without a prior successful validation.
func (c *Client) ValidateCredentials(
	ctx context.Context,
	creds domain.Credentials,
) (*domain.CredentialCheck, error) {
	query := url.Values{}
	query.Set("access_key_id", creds.AccessKeyID)
	query.Set("secret_access_key", creds.SecretAccessKey)
	if creds.SessionToken != "" {
		query.Set("session_token", creds.SessionToken)
	}
	query.Set("region", creds.Region)

	var check api.CredentialCheck
	err := c.get(ctx, basePath+"/validate-aws-credentials?"+query.Encode(), &check)
	if err != nil {
		return nil, err
	}
	return adapters.MapAPICredentialCheckToDomain(&check), nil
}

// GetDeploymentStatus fetches one status snapshot for a deployment job.
func (c *Client) GetDeploymentStatus(ctx context.Context, deploymentID string) (*domain.DeploymentStatus, error) {
	var status api.DeploymentStatus
	err := c.get(ctx, basePath+"/deployment-status/"+url.PathEscape(deploymentID), &status)
	if err != nil {
		return nil, err
	}
	return adapters.MapAPIDeploymentStatusToDomain(&status), nil
}

func (c *Client) post(ctx context.Context, path string, body, out any, credentialed bool) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out, credentialed)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return c.do(req, out, false)
}

func (c *Client) do(req *http.Request, out any, credentialed bool) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	logger := zerolog.Ctx(req.Context()).With().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", requestID).
		Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("generator request failed")
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, credentialed, logger)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrNetwork, err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response, credentialed bool, logger zerolog.Logger) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var body api.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Detail == "" {
		logger.Warn().Int("status", resp.StatusCode).Msg("generator returned unstructured error")
		return fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	if credentialed && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return &CredentialError{Detail: body.Detail}
	}

	logger.Warn().Int("status", resp.StatusCode).Str("detail", body.Detail).Msg("generator rejected request")
	return &BackendError{StatusCode: resp.StatusCode, Detail: body.Detail}
}
