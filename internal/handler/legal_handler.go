package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/legal"
)

type searchReqFields struct {
	Keyword  string `json:"keyword"`
	Province string `json:"province"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Location struct {
		Province string `json:"province"`
		City     string `json:"city"`
	} `json:"location"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type adviceReqFields struct {
	Question string `json:"question"`
}

// LegalHandler serves the legal register search and the consultation relay.
type LegalHandler struct {
	register *legal.Register
	advice   *legal.AdviceClient
	logger   zerolog.Logger
}

func NewLegalHandler(register *legal.Register, advice *legal.AdviceClient, logger zerolog.Logger) *LegalHandler {
	return &LegalHandler{register: register, advice: advice, logger: logger}
}

func (h *LegalHandler) resolveLocation(req searchReqFields) legal.Location {
	province := req.Province
	if province == "" {
		province = req.Location.Province
	}
	city := req.City
	if city == "" {
		city = req.Location.City
	}
	return legal.ResolveLocation(province, city, req.Region)
}

func (h *LegalHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}

	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		writeError(w, h.logger, http.StatusBadRequest, "search failed: missing keyword", req)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 5
	}

	rows := h.register.Rows()
	location := h.resolveLocation(req)
	results := legal.Search(rows, keyword)
	page := legal.Paginate(results, req.Page, req.PageSize)
	recommended := legal.Recommend(rows, location)

	// This endpoint predates the envelope and the client reads it flat.
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"location":    location,
		"recommended": recommended,
		"results":     page.Results,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total":       page.Total,
	})
}

func (h *LegalHandler) Location(w http.ResponseWriter, r *http.Request) {
	var req searchReqFields
	if r.Method == http.MethodPost {
		// A malformed body just resolves to the nationwide default.
		_ = decodeInto(r, &req)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"location": h.resolveLocation(req),
	})
}

func (h *LegalHandler) Advice(w http.ResponseWriter, r *http.Request) {
	var req adviceReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "please supply a consultation question", nil)
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, h.logger, http.StatusBadRequest, "question must not be empty", req)
		return
	}

	answer, err := h.advice.Ask(question)
	if err != nil {
		if errors.Is(err, legal.ErrAdviceUnreachable) {
			writeError(w, h.logger, http.StatusInternalServerError, "consultation backend is not reachable", req)
			return
		}
		writeError(w, h.logger, http.StatusInternalServerError, "consultation failed: "+err.Error(), req)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"answer": answer})
}
