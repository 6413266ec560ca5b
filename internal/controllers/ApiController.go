package controllers

import (
	"blueghost/internal/models"
	"blueghost/internal/providers"
	"blueghost/internal/services"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger    providers.Logger
	store     services.StoryStoreInterface
	generator services.GenerationServiceInterface
	cache     providers.CacheProviderInterface
}

type createStoryRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewApiController(logger providers.Logger, store services.StoryStoreInterface, generator services.GenerationServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		store:     store,
		generator: generator,
		cache:     cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps the generation error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrBlankInput), errors.Is(err, services.ErrInvalidStyle):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrServiceFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetHistory returns the caller's records, most recent first. The cache key
// carries the length read before computing, so a concurrent append can only
// leave a newer history under an older key, never the reverse.
func (ac *ApiController) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := providers.IdentityFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "login required")
		return
	}
	key := services.HistoryCacheKey(id.Username, ac.store.Len(id.Username))
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.store.History(id.Username), nil
	})
}

func (ac *ApiController) CreateStory(w http.ResponseWriter, r *http.Request) {
	id, ok := providers.IdentityFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "login required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload createStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	style, err := models.ParseStyle(payload.Style)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, services.UserMessage(services.ErrInvalidStyle))
		return
	}

	record, _, err := ac.generator.Create(r.Context(), id.Username, payload.Prompt, style)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			ac.logger.Errorf(providers.TypePost, "Story for %s failed: %s", id.Username, err)
		}
		writeJSONError(w, status, services.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusCreated, record)
}
