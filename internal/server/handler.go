// Package server exposes the proofreading pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/valpere/proofreader/internal"
	"github.com/valpere/proofreader/internal/provider"
	"github.com/valpere/proofreader/internal/proofread"
)

// Handler implements all HTTP endpoints.
type Handler struct {
	providers       map[string]provider.Provider
	defaultProvider string
	workers         int
	maxBodyBytes    int64
	log             *slog.Logger
}

// Config tunes a Handler. Zero values pick the defaults.
type Config struct {
	DefaultProvider string
	Workers         int
	MaxBodyBytes    int64
	Logger          *slog.Logger
}

// New creates a Handler serving the given providers, keyed by the name
// clients ask for.
func New(providers map[string]provider.Provider, cfg Config) *Handler {
	h := &Handler{
		providers:       providers,
		defaultProvider: cfg.DefaultProvider,
		workers:         cfg.Workers,
		maxBodyBytes:    cfg.MaxBodyBytes,
		log:             cfg.Logger,
	}
	if h.defaultProvider == "" {
		h.defaultProvider = provider.NameMock
	}
	if h.workers <= 0 {
		h.workers = proofread.DefaultWorkers
	}
	if h.maxBodyBytes <= 0 {
		h.maxBodyBytes = 1 << 20
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

// Register mounts routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /api/proofread", h.proofread)
	mux.HandleFunc("POST /api/reconstruct", h.reconstruct)
}

// ---------- endpoints ----------

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type proofreadRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	// LLMProvider is the older spelling of Provider.
	LLMProvider string `json:"llm_provider"`
}

func (h *Handler) proofread(w http.ResponseWriter, r *http.Request) {
	var body proofreadRequest
	if !h.decode(w, r, &body) {
		return
	}

	if strings.TrimSpace(body.Text) == "" {
		writeErr(w, http.StatusBadRequest, proofread.ErrEmptyInput.Error())
		return
	}

	name := body.Provider
	if name == "" {
		name = body.LLMProvider
	}
	if name == "" {
		name = h.defaultProvider
	}
	p, ok := h.providers[strings.ToLower(name)]
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown provider: "+name)
		return
	}

	req := internal.NewProofreadRequest(body.Text, p.Name())
	log := h.log.With("request_id", req.ID)
	log.Info("proofread", "provider", req.Provider, "bytes", len(req.Text))

	a := proofread.New(p, proofread.WithWorkers(h.workers), proofread.WithLogger(log))
	res, err := a.Assemble(r.Context(), req.Text)
	if err != nil {
		if r.Context().Err() != nil {
			log.Info("proofread abandoned", "err", err)
			return
		}
		log.Error("proofread failed", "err", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("X-Request-ID", req.ID)
	writeJSON(w, http.StatusOK, res)
}

type reconstructRequest struct {
	SentenceDiffs   []proofread.SentenceDiff `json:"sentence_diffs"`
	Accepted        []bool                   `json:"accepted"`
	RejectedChanges map[int][]int            `json:"rejected_changes"`
}

func (h *Handler) reconstruct(w http.ResponseWriter, r *http.Request) {
	var body reconstructRequest
	if !h.decode(w, r, &body) {
		return
	}
	if body.Accepted != nil && len(body.RejectedChanges) > 0 {
		writeErr(w, http.StatusBadRequest, "use either accepted or rejected_changes, not both")
		return
	}

	var text string
	if len(body.RejectedChanges) > 0 {
		text = proofread.ReconstructChanges(body.SentenceDiffs, body.RejectedChanges)
	} else {
		text = proofread.Reconstruct(body.SentenceDiffs, body.Accepted)
	}
	writeJSON(w, http.StatusOK, map[string]string{"final_text": text})
}

// ---------- helpers ----------

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeErr(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
