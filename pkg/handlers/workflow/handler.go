// Package workflow exposes the architecture workflow to the dashboard SPA.
// The Go process owns state and credentials; the SPA is a pure renderer.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/forge-cloud/archplan/pkg/adapters"
	"github.com/forge-cloud/archplan/pkg/models/api"
	"github.com/forge-cloud/archplan/pkg/models/domain"
	"github.com/forge-cloud/archplan/pkg/services/catalog"
	"github.com/forge-cloud/archplan/pkg/services/export"
	"github.com/forge-cloud/archplan/pkg/services/gateway"
	"github.com/forge-cloud/archplan/pkg/services/workflow"
)

// Handler serves the dashboard workflow API.
type Handler struct {
	ctrl   *workflow.Controller
	export *export.Writer
}

// NewHandler creates a workflow handler around one controller instance.
func NewHandler(ctrl *workflow.Controller) *Handler {
	return &Handler{
		ctrl:   ctrl,
		export: export.NewWriter(),
	}
}

// Routes mounts the workflow API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/workflow", h.GetState)
	r.Post("/workflow/new", h.StartNew)
	r.Post("/workflow/restart", h.Restart)
	r.Put("/workflow/answers", h.UpdateAnswers)
	r.Post("/workflow/services/toggle", h.ToggleService)
	r.Post("/workflow/compliance/toggle", h.ToggleCompliance)
	r.Post("/workflow/advance", h.Advance)
	r.Post("/workflow/back", h.Back)
	r.Post("/workflow/submit", h.Submit)
	r.Post("/workflow/credentials", h.SetCredentials)
	r.Post("/workflow/credentials/validate", h.ValidateCredentials)
	r.Post("/workflow/deploy", h.Deploy)
	r.Post("/workflow/import", h.StartImport)
	r.Post("/workflow/policies/apply", h.ApplyPolicies)
	r.Post("/workflow/retry", h.Retry)
	r.Get("/workflow/export", h.Export)
	r.Get("/catalog", h.GetCatalog)
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, r)
}

func (h *Handler) StartNew(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.StartNew(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Restart()
	h.writeState(w, r)
}

func (h *Handler) UpdateAnswers(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateAnswersRequest
	if !h.decode(w, r, &req) {
		return
	}

	view := h.ctrl.View()
	a := view.Answers

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&a.ProjectName, req.ProjectName)
	apply(&a.Description, req.Description)
	apply(&a.ComputePreference, req.ComputePreference)
	apply(&a.TrafficVolume, req.TrafficVolume)
	apply(&a.DatabaseType, req.DatabaseType)
	apply(&a.StorageNeeds, req.StorageNeeds)
	apply(&a.DataSensitivity, req.DataSensitivity)
	apply(&a.BudgetRange, req.BudgetRange)
	if req.ApplicationType != nil {
		a.ApplicationType = domain.ApplicationType(*req.ApplicationType)
	}

	err := errors.Join(
		h.ctrl.SetProjectBasics(a.ProjectName, a.Description),
		h.ctrl.SetApplicationProfile(a.ApplicationType, a.ComputePreference, a.TrafficVolume),
		h.ctrl.SetDataLayer(a.DatabaseType, a.StorageNeeds, a.DataSensitivity),
		h.ctrl.SetBudgetRange(a.BudgetRange),
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) ToggleService(w http.ResponseWriter, r *http.Request) {
	var req api.ToggleServiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.ctrl.ToggleService(domain.ServiceCategory(req.Category), req.Service); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) ToggleCompliance(w http.ResponseWriter, r *http.Request) {
	var req api.ToggleComplianceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.ctrl.ToggleCompliance(req.Tag); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Advance(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Back(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Submit(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) SetCredentials(w http.ResponseWriter, r *http.Request) {
	var req api.SetCredentialsRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.ctrl.SetCredentials(adapters.MapAPICredentialsToDomain(req))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ValidateCredentials(w http.ResponseWriter, r *http.Request) {
	check, err := h.ctrl.ValidateCredentials(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, api.CredentialCheck{
		Valid:     check.Valid,
		AccountID: check.AccountID,
		Error:     check.Error,
	})
}

func (h *Handler) Deploy(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.ConfirmDeploy(h.pollContext(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) StartImport(w http.ResponseWriter, r *http.Request) {
	var req api.StartImportRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.ctrl.ImportExisting(r.Context(), req.ProjectName, req.ServicesToImport); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) ApplyPolicies(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.ApplyAutoFixPolicies(h.pollContext(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.RetryAfterFailure(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r)
}

// Export streams the plan document as a download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	view := h.ctrl.View()
	if view.Plan == nil {
		h.writeError(w, r, workflow.ErrWrongPhase)
		return
	}

	filename := export.Filename(view.Answers.ProjectName)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.export.Render(w, view.Answers, *view.Plan); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render plan document")
	}
}

type catalogResponse struct {
	ApplicationTypes     []catalog.Option            `json:"application_types"`
	ComputePreferences   []catalog.Option            `json:"compute_preferences"`
	TrafficVolumes       []catalog.Option            `json:"traffic_volumes"`
	DatabaseTypes        []catalog.Option            `json:"database_types"`
	StorageNeeds         []catalog.Option            `json:"storage_needs"`
	DataSensitivities    []catalog.Option            `json:"data_sensitivities"`
	BudgetRanges         []catalog.Option            `json:"budget_ranges"`
	ComplianceFrameworks []catalog.Option            `json:"compliance_frameworks"`
	ServiceCategories    []string                    `json:"service_categories"`
	Services             map[string][]catalog.Option `json:"services"`
	ImportableServices   []catalog.Option            `json:"importable_services"`
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	services := make(map[string][]catalog.Option, len(catalog.Services))
	categories := make([]string, 0, len(domain.ServiceCategories))
	for _, c := range domain.ServiceCategories {
		categories = append(categories, string(c))
		services[string(c)] = catalog.CategoryOptions(c)
	}

	h.writeJSON(w, r, catalogResponse{
		ApplicationTypes:     catalog.ApplicationTypes,
		ComputePreferences:   catalog.ComputePreferences,
		TrafficVolumes:       catalog.TrafficVolumes,
		DatabaseTypes:        catalog.DatabaseTypes,
		StorageNeeds:         catalog.StorageNeeds,
		DataSensitivities:    catalog.DataSensitivities,
		BudgetRanges:         catalog.BudgetRanges,
		ComplianceFrameworks: catalog.ComplianceFrameworks,
		ServiceCategories:    categories,
		Services:             services,
		ImportableServices:   catalog.ImportableServices,
	})
}

// pollContext detaches from the request lifetime so the deploy poller
// survives the response, while keeping the request logger.
func (h *Handler) pollContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *Handler) writeState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, adapters.MapDomainWorkflowViewToAPI(h.ctrl.View()))
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeErrorStatus(w, r, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var backendErr *gateway.BackendError
	var credErr *gateway.CredentialError

	switch {
	case errors.Is(err, workflow.ErrBusy):
		h.writeErrorStatus(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrWrongPhase), errors.Is(err, workflow.ErrInvalidStep):
		h.writeErrorStatus(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &credErr):
		h.writeErrorStatus(w, r, http.StatusUnauthorized, credErr.Detail)
	case errors.As(err, &backendErr):
		h.writeErrorStatus(w, r, http.StatusBadGateway, backendErr.Detail)
	case errors.Is(err, gateway.ErrNetwork):
		h.writeErrorStatus(w, r, http.StatusBadGateway, "architecture generator unreachable")
	default:
		h.writeErrorStatus(w, r, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Detail: detail}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode error response")
	}
}
