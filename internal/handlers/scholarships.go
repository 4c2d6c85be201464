package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"scholarhub/internal/dataset"
	"scholarhub/internal/filter"
)

const defaultSearchLimit = 20

// FindIndianScholarships handles POST /find_indian_scholarships.
func (h *Handler) FindIndianScholarships(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	table, err := h.Data.DomesticTable()
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgDatabaseUnavailable)
		return
	}

	res := filter.FilterDomestic(table, filter.Criteria(body))
	h.logSkipped("domestic", res.Skipped)
	h.Log.Debug("domestic filter", zap.Int("matches", len(res.Matches)))
	writeJSONResp(w, http.StatusOK, map[string]any{"matching_scholarships": res.Matches})
}

// FindInternationalScholarships handles POST /find_international_scholarships.
func (h *Handler) FindInternationalScholarships(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	table, err := h.Data.InternationalTable()
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgDatabaseUnavailable)
		return
	}

	res := filter.FilterInternational(table, filter.Criteria(body))
	h.logSkipped("international", res.Skipped)
	writeJSONResp(w, http.StatusOK, map[string]any{"matching_scholarships": res.Matches})
}

// SearchScholarships handles GET /search_scholarships?q=&limit=.
func (h *Handler) SearchScholarships(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := defaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	_, domErr := h.Data.DomesticTable()
	_, intlErr := h.Data.InternationalTable()
	if errors.Is(domErr, dataset.ErrUnavailable) && errors.Is(intlErr, dataset.ErrUnavailable) {
		writeError(w, http.StatusInternalServerError, msgDatabaseUnavailable)
		return
	}
	writeJSONResp(w, http.StatusOK, filter.Search(h.Data, q, limit))
}

func (h *Handler) logSkipped(source string, skipped []filter.Skipped) {
	for _, s := range skipped {
		h.Log.Debug("row skipped", zap.String("dataset", source), zap.Int("row", s.Row), zap.String("reason", s.Reason))
	}
	if len(skipped) > 0 {
		h.Log.Info("rows skipped while filtering", zap.String("dataset", source), zap.Int("count", len(skipped)))
	}
}
