package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"

	"splashd/internal/event"
	"splashd/internal/splash"
	"splashd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Games() []types.Game
	Render(gameID string, tag language.Tag) (splash.Markup, error)
	Play(gameID string, fields event.Payload) (event.Payload, error)
	Publish(name event.Name, payload event.Payload) (event.Payload, error)
	Dispatcher() *event.Dispatcher
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Common middlewares; CORS only when configured.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}

	// The websocket route stays outside the compressed group.
	r.Get("/events/ws", newWSHandler(svc).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))

		r.Get("/games", h.games)
		r.Get("/splash/{gameID}", h.splashPage)
		r.Get("/splash/{gameID}/markup", h.splashMarkup)
		r.Post("/splash/{gameID}/play", h.play)
		r.Post("/events/{name}", h.broadcast)
		r.Get("/status", h.status)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("shutting down"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// requestLang resolves ?lang= first, then Accept-Language. language.Und means
// the service default applies.
func requestLang(r *http.Request) language.Tag {
	if tag, ok := splash.ParseLang(r.URL.Query().Get("lang")); ok {
		return tag
	}
	if tag, ok := splash.ParseLang(r.Header.Get("Accept-Language")); ok {
		return tag
	}
	return language.Und
}

// readPayload decodes an optional JSON object body. An empty body yields nil.
func readPayload(w http.ResponseWriter, r *http.Request) (event.Payload, int, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return nil, http.StatusUnsupportedMediaType, errors.New("Content-Type must be application/json")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var p event.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		// Oversized bodies also end up here; no size details are leaked.
		return nil, http.StatusBadRequest, errors.New("invalid JSON body")
	}
	return p, 0, nil
}

func (h *handlers) listeners(name event.Name) int {
	return h.svc.Dispatcher().Stats().Events[name]
}

// games godoc
// @Summary      List games
// @Tags         splash
// @Produce      json
// @Success      200  {object}  types.GamesResponse
// @Router       /games [get]
func (h *handlers) games(w http.ResponseWriter, r *http.Request) {
	games := h.svc.Games()
	if games == nil {
		games = []types.Game{}
	}
	writeJSON(w, types.GamesResponse{Games: games})
}

// splashPage godoc
// @Summary      Splash overlay page
// @Tags         splash
// @Produce      html
// @Param        gameID  path   string  true   "Game id"
// @Param        lang    query  string  false  "Consent language"
// @Success      200
// @Failure      404  {object}  types.ErrorResponse
// @Router       /splash/{gameID} [get]
func (h *handlers) splashPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	m, err := h.svc.Render(id, requestLang(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// Relative to /splash/{gameID}.
	page, err := splash.Page(m, url.PathEscape(id)+"/play")
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", m.Lang)
	_, _ = io.WriteString(w, page)
}

// splashMarkup godoc
// @Summary      Splash overlay markup
// @Tags         splash
// @Produce      json
// @Param        gameID  path   string  true   "Game id"
// @Param        lang    query  string  false  "Consent language"
// @Success      200  {object}  types.MarkupResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /splash/{gameID}/markup [get]
func (h *handlers) splashMarkup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	m, err := h.svc.Render(id, requestLang(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, types.MarkupResponse{GameID: id, Lang: m.Lang, CSS: m.CSS, HTML: m.HTML, ContainerID: m.ContainerID})
}

// play godoc
// @Summary      Click the play button
// @Description  Broadcasts playClick for the game. The body is optional.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        gameID  path  string  true  "Game id"
// @Success      200  {object}  types.BroadcastResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /splash/{gameID}/play [post]
func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	fields, status, err := readPayload(w, r)
	if err != nil {
		writeJSONError(w, status, err.Error())
		return
	}
	n := h.listeners(event.PlayClick)
	p, err := h.svc.Play(chi.URLParam(r, "gameID"), fields)
	if err != nil {
		status := writeServiceError(w, err)
		logBroadcast(r, event.PlayClick.String(), status, start, err)
		return
	}
	writeJSON(w, types.BroadcastResponse{Event: event.PlayClick.String(), Payload: p, Listeners: n})
	logBroadcast(r, event.PlayClick.String(), http.StatusOK, start, nil)
}

// broadcast godoc
// @Summary      Broadcast an event
// @Description  Delivers the JSON object body to every listener of the event.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Event name"
// @Success      200  {object}  types.BroadcastResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /events/{name} [post]
func (h *handlers) broadcast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := event.Name(chi.URLParam(r, "name"))
	payload, status, err := readPayload(w, r)
	if err != nil {
		writeJSONError(w, status, err.Error())
		return
	}
	n := h.listeners(name)
	p, err := h.svc.Publish(name, payload)
	if err != nil {
		status := writeServiceError(w, err)
		logBroadcast(r, name.String(), status, start, err)
		return
	}
	if p == nil {
		p = event.Payload{}
	}
	writeJSON(w, types.BroadcastResponse{Event: name.String(), Payload: p, Listeners: n})
	logBroadcast(r, name.String(), http.StatusOK, start, nil)
}

// status godoc
// @Summary      Dispatcher and splash status
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Status())
}
