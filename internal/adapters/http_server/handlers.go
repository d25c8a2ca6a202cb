package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"offer_post/internal/app"
	"offer_post/internal/domain"
)

const (
	maxBodyBytes       = 1 << 20
	quotaRetryAfterSec = "30"
)

// Posts is the slice of app.PostService the handlers use.
type Posts interface {
	Create(ctx context.Context, url string, opts domain.GenerationOptions) (domain.PostRecord, error)
	Get(ctx context.Context, id string) (domain.PostRecord, error)
	Edit(ctx context.Context, id string, e domain.PostEdit) (domain.PostRecord, error)
	AddSection(ctx context.Context, id, title string, items []domain.SectionItem) (domain.PostRecord, error)
	AddItem(ctx context.Context, id, section string, item domain.SectionItem) (domain.PostRecord, error)
}

type Handlers struct {
	Posts        Posts
	AllowedHosts []string // empty accepts any host
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1/posts", func(r chi.Router) {
		r.Use(RequireJSON)
		r.Post("/", h.createPost)
		r.Get("/{id}", h.getPost)
		r.Put("/{id}", h.editPost)
		r.Post("/{id}/sections", h.addSection)
		r.Post("/{id}/sections/{section}/items", h.addItem)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrSectionFull):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrExtractionFailed):
		writeProblem(w, http.StatusNotFound, "Not Found", "no offer data found")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrQuotaExceeded):
		w.Header().Set("Retry-After", quotaRetryAfterSec)
		writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "generation quota exceeded, try again shortly")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	etag, body := calcETagAndBody(v)
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}

type createRequest struct {
	URL       string `json:"url"`
	UseEmojis *bool  `json:"useEmojis"`
	Style     string `json:"style"`
}

func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	u, err := h.checkURL(req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	style, err := domain.ParseStyle(req.Style)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := domain.GenerationOptions{UseEmojis: true, Style: style}
	if req.UseEmojis != nil {
		opts.UseEmojis = *req.UseEmojis
	}

	rec, err := h.Posts.Create(r.Context(), u, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/posts/"+rec.ID)
	writeJSON(w, http.StatusCreated, app.ToPostView(rec))
}

// checkURL accepts absolute http(s) URLs whose host is allowed.
func (h *Handlers) checkURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url is required", domain.ErrInvalidRequest)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", fmt.Errorf("%w: url must be an absolute http(s) URL", domain.ErrInvalidRequest)
	}
	if !hostAllowed(u.Hostname(), h.AllowedHosts) {
		return "", fmt.Errorf("%w: host %q is not supported", domain.ErrInvalidRequest, u.Hostname())
	}
	return u.String(), nil
}

func hostAllowed(host string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, a := range allowed {
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}

func (h *Handlers) getPost(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(app.ToPostView(rec))
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getPost body")
	}
}

func (h *Handlers) editPost(w http.ResponseWriter, r *http.Request) {
	var e domain.PostEdit
	if err := decode(w, r, &e); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.Posts.Edit(r.Context(), chi.URLParam(r, "id"), e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ToPostView(rec))
}

type sectionRequest struct {
	Title string               `json:"title"`
	Items []domain.SectionItem `json:"items"`
}

func (h *Handlers) addSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.Posts.AddSection(r.Context(), chi.URLParam(r, "id"), req.Title, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app.ToPostView(rec))
}

func (h *Handlers) addItem(w http.ResponseWriter, r *http.Request) {
	var item domain.SectionItem
	if err := decode(w, r, &item); err != nil {
		writeError(w, err)
		return
	}
	section, err := url.PathUnescape(chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: bad section name", domain.ErrInvalidRequest))
		return
	}
	rec, err := h.Posts.AddItem(r.Context(), chi.URLParam(r, "id"), section, item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app.ToPostView(rec))
}
