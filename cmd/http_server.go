package cmd

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vfaronov/httpheader"

	"github.com/brpalette/brpalette/internal/app"
	"github.com/brpalette/brpalette/internal/generator"
	"github.com/brpalette/brpalette/internal/metrics"
	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/utils"
)

const maxRequestBody = 64 * 1024

// APIHandler handles HTTP API requests
type APIHandler struct {
	ctrl         *app.Controller
	metrics      *metrics.Metrics
	shareBaseURL string
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(ctrl *app.Controller, m *metrics.Metrics, shareBaseURL string) *APIHandler {
	return &APIHandler{
		ctrl:         ctrl,
		metrics:      m,
		shareBaseURL: shareBaseURL,
	}
}

// GenerateRequest asks for a palette from a description
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// SelectRequest picks a variation by index
type SelectRequest struct {
	Index int `json:"index"`
}

// ShareRequest carries a share link to decode
type ShareRequest struct {
	Link string `json:"link"`
}

// SaveResponse reports whether a save added a palette
type SaveResponse struct {
	Saved   bool            `json:"saved"`
	Palette palette.Palette `json:"palette"`
}

// Health check endpoint (Public)
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": Version,
	})
}

// State endpoint (Protected)
func (h *APIHandler) State(w http.ResponseWriter, r *http.Request) {
	s := h.ctrl.Snapshot()
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"theme":              s.Theme,
		"current":            s.Current,
		"loading":            s.Loading,
		"variations_loading": s.VariationsLoading,
		"error":              s.Error,
		"variations":         s.Variations,
		"saved_count":        len(s.Saved),
		"notification":       s.Notification.Message,
	})
}

// Generate endpoint (Protected)
func (h *APIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	// The palette becomes current even if the client disconnects.
	if err := h.ctrl.Generate(context.WithoutCancel(r.Context()), req.Prompt); err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, h.ctrl.Snapshot().Current)
}

// Variations endpoint (Protected). POST requests new variations, GET returns
// the pending ones.
func (h *APIHandler) Variations(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if err := h.ctrl.GenerateVariations(context.WithoutCancel(r.Context())); err != nil {
			writeGenerationError(w, err)
			return
		}
	}
	variations := h.ctrl.Snapshot().Variations
	if variations == nil {
		variations = []palette.Palette{}
	}
	writeJSONResponse(w, http.StatusOK, variations)
}

// SelectVariation endpoint (Protected)
func (h *APIHandler) SelectVariation(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.ctrl.SelectVariation(req.Index); err != nil {
		http.Error(w, "no such variation", http.StatusNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, h.ctrl.Snapshot().Current)
}

// ListSaved endpoint (Protected)
func (h *APIHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.ctrl.Snapshot().Saved)
}

// Save endpoint (Protected). An empty body saves the current palette.
func (h *APIHandler) Save(w http.ResponseWriter, r *http.Request) {
	var (
		p     palette.Palette
		added bool
		err   error
	)
	empty, ok := decodeOptionalBody(w, r, &p)
	if !ok {
		return
	}
	if empty {
		cur := h.ctrl.Snapshot().Current
		if cur == nil {
			http.Error(w, app.ErrNoPalette.Error(), http.StatusConflict)
			return
		}
		p = *cur
		added, err = h.ctrl.SaveCurrent()
	} else {
		if verr := validateImported(&p); verr != nil {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		added, err = h.ctrl.Save(p)
	}
	if err != nil {
		http.Error(w, "Failed to save palette: "+err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSONResponse(w, status, SaveResponse{Saved: added, Palette: p})
}

// lookupSaved resolves the {id} path value. A missing palette is 404 and a
// short ID shared by several palettes is 409.
func (h *APIHandler) lookupSaved(w http.ResponseWriter, r *http.Request) (palette.Palette, bool) {
	p, err := palette.Lookup(h.ctrl.Snapshot().Saved, r.PathValue("id"))
	var amb *palette.AmbiguousRefError
	switch {
	case err == nil:
		return p, true
	case errors.As(err, &amb):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, app.ErrNotFound.Error(), http.StatusNotFound)
	}
	return palette.Palette{}, false
}

// GetSaved endpoint (Protected)
func (h *APIHandler) GetSaved(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookupSaved(w, r)
	if !ok {
		return
	}
	writeJSONResponse(w, http.StatusOK, p)
}

// DeleteSaved endpoint (Protected)
func (h *APIHandler) DeleteSaved(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookupSaved(w, r)
	if !ok {
		return
	}
	if err := h.ctrl.Delete(p.ID); err != nil {
		if errors.Is(err, app.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "deleted", "id": p.ID})
}

// Load endpoint (Protected). Makes a saved palette current.
func (h *APIHandler) Load(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookupSaved(w, r)
	if !ok {
		return
	}
	if err := h.ctrl.Load(p.ID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, h.ctrl.Snapshot().Current)
}

// ShareLink endpoint (Protected). Encodes the current palette; ?base=
// overrides the configured base URL.
func (h *APIHandler) ShareLink(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		base = h.shareBaseURL
	}
	link, err := h.ctrl.ShareLink(base)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"link": link})
}

// DecodeShare endpoint (Protected). Decodes a link and makes it current.
func (h *APIHandler) DecodeShare(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := palette.DecodeShareLink(req.Link)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.ctrl.LoadShared(p)
	writeJSONResponse(w, http.StatusOK, h.ctrl.Snapshot().Current)
}

// Theme endpoint (Protected). POST flips the theme.
func (h *APIHandler) Theme(w http.ResponseWriter, r *http.Request) {
	theme := h.ctrl.Snapshot().Theme
	if r.Method == http.MethodPost {
		var err error
		theme, err = h.ctrl.ToggleTheme()
		if err != nil {
			http.Error(w, "Failed to persist theme: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"theme": theme.String()})
}

// newServerHandler wires routes, auth and CORS
func newServerHandler(h *APIHandler, authToken string) http.Handler {
	mux := http.NewServeMux()

	// Register Handlers
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", h.metrics.Handler())
	mux.HandleFunc("GET /state", h.State)
	mux.HandleFunc("POST /generate", h.Generate)
	mux.HandleFunc("GET /variations", h.Variations)
	mux.HandleFunc("POST /variations", h.Variations)
	mux.HandleFunc("POST /variations/select", h.SelectVariation)
	mux.HandleFunc("GET /saved", h.ListSaved)
	mux.HandleFunc("POST /saved", h.Save)
	mux.HandleFunc("GET /saved/{id}", h.GetSaved)
	mux.HandleFunc("DELETE /saved/{id}", h.DeleteSaved)
	mux.HandleFunc("POST /saved/{id}/load", h.Load)
	mux.HandleFunc("GET /share", h.ShareLink)
	mux.HandleFunc("POST /share", h.DecodeShare)
	mux.HandleFunc("GET /theme", h.Theme)
	mux.HandleFunc("POST /theme", h.Theme)

	// Wrap mux with Auth and CORS (CORS outermost to ensure 401/403 include headers)
	return corsMiddleware(authMiddleware(authToken, mux))
}

// startHTTPServer serves the API on ln until it is closed
func startHTTPServer(ln net.Listener, handler http.Handler) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Debug("HTTP server error: %v", err)
		return err
	}
	return nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func authMiddleware(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Allow health check and scraping without auth
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		// Allow OPTIONS for CORS preflight
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		// Check for Authorization header
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			providedToken := strings.TrimPrefix(authHeader, "Bearer ")
			if len(providedToken) == len(token) && subtle.ConstantTimeCompare([]byte(providedToken), []byte(token)) == 1 {
				next.ServeHTTP(w, r)
				return
			}
		}

		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

// ensureAuthToken returns the token stored at path, creating one on first use.
func ensureAuthToken(path string) string {
	data, err := os.ReadFile(path)
	if err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}

	// Generate new token
	token := uuid.New().String()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		utils.Debug("Failed to create token dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		utils.Debug("Failed to write token file: %v", err)
	}
	return token
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	empty, ok := decodeOptionalBody(w, r, v)
	if ok && empty {
		http.Error(w, "Invalid JSON: "+io.EOF.Error(), http.StatusBadRequest)
		return false
	}
	return ok
}

// decodeOptionalBody is decodeBody for endpoints where no body is allowed.
// Chunked requests carry no Content-Length, so emptiness is only known once
// the decoder hits EOF.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v any) (empty, ok bool) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			utils.Debug("Error closing body: %v", err)
		}
	}()
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(v)
	switch {
	case errors.Is(err, io.EOF):
		return true, true
	case err != nil:
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false, false
	}
	return false, true
}

// writeGenerationError maps controller and generator failures onto status
// codes. The body is always the user-facing message.
func writeGenerationError(w http.ResponseWriter, err error) {
	var rateErr *generator.RateLimitError
	switch {
	case errors.Is(err, app.ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, app.ErrNoPalette):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &rateErr):
		if rateErr.RetryAfter > 0 {
			httpheader.SetRetryAfter(w.Header(), time.Now().Add(rateErr.RetryAfter))
		}
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Debug("Failed to encode response: %v", err)
	}
}
