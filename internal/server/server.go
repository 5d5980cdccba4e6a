// Package server exposes the advisor over HTTP for frontend use.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"

	"llm-investment-advisor/internal/catalog"
	"llm-investment-advisor/internal/engine"
	"llm-investment-advisor/internal/interfaces"
	"llm-investment-advisor/internal/ledger"
	"llm-investment-advisor/internal/logger"
	"llm-investment-advisor/internal/marketdata"
	"llm-investment-advisor/internal/month"
	"llm-investment-advisor/internal/prompt"
	"llm-investment-advisor/internal/store"
	"llm-investment-advisor/internal/types"
)

type Server struct {
	cfg    *store.Config
	ledger *ledger.Service
	engine interfaces.Engine
	news   interfaces.NewsProvider
	cat    *catalog.Catalog
	router *mux.Router
}

func New(cfg *store.Config, led *ledger.Service, eng interfaces.Engine, news interfaces.NewsProvider, cat *catalog.Catalog) *Server {
	s := &Server{
		cfg:    cfg,
		ledger: led,
		engine: eng,
		news:   news,
		cat:    cat,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/init", s.handleInit).Methods("POST")
	s.router.HandleFunc("/advice", s.handleAdvice).Methods("POST")
	s.router.HandleFunc("/trade", s.handleTrade).Methods("POST")
	s.router.HandleFunc("/holdings", s.handleHoldings).Methods("GET")
	s.router.HandleFunc("/prices/{month}", s.handlePrices).Methods("GET")
	s.router.HandleFunc("/news/{month}", s.handleNews).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the fully wrapped HTTP handler, for tests and Start.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(s.router)
}

func (s *Server) Start() error {
	logger.Info(context.Background(), "HTTP server starting", "addr", s.cfg.Server.Addr)
	return http.ListenAndServe(s.cfg.Server.Addr, s.Handler())
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Personality  string   `json:"personality"`
		InitialFunds *float64 `json:"initial_funds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount := s.cfg.Sim.StartingCash
	if req.InitialFunds != nil {
		amount = *req.InitialFunds
	}

	if _, err := s.ledger.Initialize(r.Context(), decimal.NewFromFloat(amount)); err != nil {
		s.respondLedgerError(w, r, err)
		return
	}

	respondJSON(w, map[string]any{
		"message":       "Initialized with $" + decimal.NewFromFloat(amount).StringFixed(2),
		"system_prompt": prompt.Personality(req.Personality),
	})
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month       string `json:"month"`
		Date        string `json:"date"` // legacy alias for month
		Personality string `json:"personality"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	label := req.Month
	if label == "" {
		label = req.Date
	}
	m, err := month.Parse(label)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	advice, err := s.engine.AdviceFor(r.Context(), m, req.Personality)
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}
	respondJSON(w, advice)
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month  string `json:"month"`
		Symbol string `json:"symbol"`
		Side   string `json:"side"`
		Qty    int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := month.Parse(req.Month)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.ExecuteTrade(r.Context(), m, req.Symbol, req.Side, req.Qty)
	if err != nil {
		status := statusFromErr(err)
		if result.Status == "REJECTED" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(result)
			return
		}
		respondError(w, status, err.Error())
		return
	}
	respondJSON(w, result)
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	view, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}
	respondJSON(w, map[string]any{
		"cash":        view.Cash,
		"total_value": view.TotalValue,
		"holdings":    view.Holdings,
		"summary":     engine.FormatHoldings(view),
	})
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	m, err := month.Parse(mux.Vars(r)["month"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, ok := s.cat.Month(m)
	if !ok {
		respondError(w, http.StatusNotFound, "no data for "+m.String())
		return
	}

	prices := make(map[string]types.Quote, len(entries))
	for name, e := range entries {
		prices[name] = e.Stock
	}
	respondJSON(w, map[string]any{"month": m.String(), "prices": prices})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	m, err := month.Parse(mux.Vars(r)["month"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	digest, err := s.news.MonthDigest(r.Context(), m)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, map[string]string{"month": m.String(), "digest": digest})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]any{
		"status":      "ok",
		"initialized": s.ledger.Initialized(),
	})
}

func (s *Server) respondLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromErr(err)
	if status >= 500 {
		logger.ErrorWithErr(r.Context(), "Request failed", err, "path", r.URL.Path)
	}
	respondError(w, status, err.Error())
}

// statusFromErr maps domain errors onto HTTP status codes.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrNoSuchPosition),
		errors.Is(err, marketdata.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrStoreUnavailable),
		errors.Is(err, ledger.ErrMalformedState):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
