// Package httpapi exposes the aggregation core to the presentation layer as
// a JSON API, plus health and metrics endpoints.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
	"github.com/T3chfalcon/offsec-radar/internal/infra/aggregator"
	"github.com/T3chfalcon/offsec-radar/internal/infra/catalog"
)

type Handler struct {
	aggregator *aggregator.Aggregator
	catalog    *catalog.Store
	logger     *zap.Logger
}

func NewHandler(agg *aggregator.Aggregator, store *catalog.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		aggregator: agg,
		catalog:    store,
		logger:     logger.Named("httpapi"),
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/tools/search", h.handleSearch)
	mux.HandleFunc("GET /api/v1/tools/trending", h.handleTrending)
	mux.HandleFunc("GET /api/v1/repos/{owner}/{repo}", h.handleDescribe)
}

// handleSearch runs the search entry point. The aggregator propagates
// provider failures here, and this handler applies the caller-side fallback:
// it serves the curated dataset (optionally filtered by category) with the
// fallback flag set, so presentation renders a degraded state instead of an
// error page.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filters, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := r.URL.Query().Get("category")

	tools, searchErr := h.aggregator.Search(r.Context(), query, filters)
	if searchErr != nil {
		code, _ := domain.CodeFrom(searchErr)
		h.logger.Warn("search degraded to curated dataset",
			zap.String("code", string(code)),
			zap.Error(searchErr),
		)
		writeJSON(w, http.StatusOK, domain.SearchResult{
			Tools:    filterByCategory(h.catalog.Tools(), category),
			Fallback: true,
		})
		return
	}

	writeJSON(w, http.StatusOK, domain.SearchResult{
		Tools: filterByCategory(tools, category),
	})
}

func (h *Handler) handleTrending(w http.ResponseWriter, r *http.Request) {
	result := h.aggregator.Trending(r.Context())
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleDescribe(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repo := r.PathValue("repo")

	tool, err := h.aggregator.Describe(r.Context(), owner, repo)
	if err != nil {
		status := http.StatusBadGateway
		if code, ok := domain.CodeFrom(err); ok && code == domain.CodeRateLimited {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

func parseFilters(r *http.Request) (domain.FilterParams, error) {
	values := r.URL.Query()
	filters := domain.FilterParams{}

	if raw := values.Get("minStars"); raw != "" {
		minStars, err := strconv.Atoi(raw)
		if err != nil || minStars < 0 {
			return filters, errInvalidParam("minStars", raw)
		}
		filters.MinStars = minStars
	}
	if language := values.Get("language"); language != "" {
		filters.Language = language
	}
	if raw := values.Get("updatedAfter"); raw != "" {
		updatedAfter, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filters, errInvalidParam("updatedAfter", raw)
		}
		filters.UpdatedAfter = updatedAfter
	}
	if raw := values.Get("topics"); raw != "" {
		for _, topic := range strings.Split(raw, ",") {
			topic = strings.TrimSpace(topic)
			if topic != "" {
				filters.Topics = append(filters.Topics, topic)
			}
		}
	}
	return filters, nil
}

func filterByCategory(tools []domain.ToolRecord, category string) []domain.ToolRecord {
	if category == "" {
		return tools
	}
	filtered := make([]domain.ToolRecord, 0, len(tools))
	for _, tool := range tools {
		if string(tool.Category) == category {
			filtered = append(filtered, tool)
		}
	}
	return filtered
}

type paramError struct {
	name  string
	value string
}

func (e paramError) Error() string {
	return "invalid " + e.name + ": " + e.value
}

func errInvalidParam(name, value string) error {
	return paramError{name: name, value: value}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
