package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/registry"
	"github.com/shohag/airegistry/internal/validation"
)

type EndpointHandler struct {
	svc *registry.Service
	log zerolog.Logger
}

func NewEndpointHandler(svc *registry.Service, log zerolog.Logger) *EndpointHandler {
	return &EndpointHandler{svc: svc, log: log}
}

type createEndpointRequest struct {
	EndpointID      string                 `json:"endpointId"`
	Method          string                 `json:"method"`
	Description     string                 `json:"description"`
	URL             string                 `json:"url"`
	PromptExample   string                 `json:"promptExample"`
	ResponseExample string                 `json:"responseExample"`
	IsJSONResponse  *bool                  `json:"isJsonResponse"`
	Creator         string                 `json:"creator"`
	TestCases       []models.TestCaseInput `json:"testCases"`
}

func (req createEndpointRequest) submission() models.Submission {
	sub := models.NewSubmission()
	sub.EndpointID = req.EndpointID
	sub.Method = req.Method
	sub.Description = req.Description
	sub.URL = req.URL
	sub.PromptExample = req.PromptExample
	sub.ResponseExample = req.ResponseExample
	if req.IsJSONResponse != nil {
		sub.IsJSONResponse = *req.IsJSONResponse
	}
	sub.Creator = req.Creator
	sub.TestCases = req.TestCases
	return sub
}

func decodeSubmission(r *http.Request) (models.Submission, error) {
	var req createEndpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return models.Submission{}, err
	}
	return req.submission(), nil
}

func (h *EndpointHandler) Create(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ep, err := h.svc.Register(r.Context(), sub)
	if err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			writeValidationError(w, verrs)
			return
		}
		h.log.Error().Err(err).Msg("failed to register endpoint")
		writeError(w, http.StatusInternalServerError, "failed to create endpoint")
		return
	}

	writeJSON(w, http.StatusCreated, ep)
}

func (h *EndpointHandler) Validate(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Validate(sub); err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			writeValidationError(w, verrs)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to validate endpoint")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *EndpointHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ep, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("failed to get endpoint")
		writeError(w, http.StatusInternalServerError, "failed to get endpoint")
		return
	}
	if ep == nil {
		writeError(w, http.StatusNotFound, "endpoint not found")
		return
	}
	writeJSON(w, http.StatusOK, ep)
}

func (h *EndpointHandler) List(w http.ResponseWriter, r *http.Request) {
	eps, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list endpoints")
		writeError(w, http.StatusInternalServerError, "failed to list endpoints")
		return
	}
	if eps == nil {
		eps = []models.Endpoint{}
	}
	writeJSON(w, http.StatusOK, eps)
}

// Delete is idempotent: removing an unknown id still answers 204.
func (h *EndpointHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("failed to delete endpoint")
		writeError(w, http.StatusInternalServerError, "failed to delete endpoint")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
