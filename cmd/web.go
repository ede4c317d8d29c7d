package cmd

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/shencore/shen/cmd/web/components"
	_ "github.com/shencore/shen/cmd/web/renderers"
	"github.com/shencore/shen/pkg/api"
	"github.com/shencore/shen/pkg/config"
	"github.com/shencore/shen/pkg/history"
	"github.com/shencore/shen/pkg/log"
	"github.com/shencore/shen/pkg/realtime"
	"github.com/shencore/shen/pkg/render"
	"github.com/shencore/shen/pkg/search"
	"github.com/shencore/shen/pkg/session"
)

//go:embed web/static/*
var staticFS embed.FS

var webLogger = log.ForService("web")

const (
	sessionCookie = "shen_sid"
	evictInterval = time.Minute
)

// WebCommand creates the web command with both API and UI
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start web server with both API endpoints and HTML interface",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides web.port)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides web.host)",
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "Display locale (overrides locale), e.g. fa or en",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startWebServer(ctx, c.String("config"), c.String("host"), c.String("port"), c.String("locale"))
		},
	}
}

// WebServer holds the server configuration and dependencies
type WebServer struct {
	locale    string
	sessions  *session.Manager
	hub       *realtime.Hub
	renderSvc *render.Service
	apiServer *api.Server
}

// newWebServer wires sessions, the realtime hub and the API around exec.
// store may be nil when history is disabled.
func newWebServer(cfg *config.Config, exec search.Executor, store *history.Store) *WebServer {
	hub := realtime.NewHub(0)
	locale := cfg.Locale

	sessions := session.NewManager(func(id string) *session.Controller {
		return session.NewController(exec,
			session.WithLocale(locale),
			session.WithObserver(hub.Observer(id)),
		)
	}, cfg.Web.SessionTTL.Duration)

	return &WebServer{
		locale:    locale,
		sessions:  sessions,
		hub:       hub,
		renderSvc: render.NewService(render.GetGlobalRegistry()),
		apiServer: api.NewServer(sessions, exec, hub, store, locale),
	}
}

// Handler returns the full HTTP handler: API, UI and static assets.
func (s *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// API routes
	s.apiServer.RegisterRoutes(mux)

	// Web UI routes
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("POST /type", s.handleType)
	mux.HandleFunc("POST /more", s.handleMore)

	// Static assets
	mux.HandleFunc("GET /static/", s.handleStatic)

	return api.CorsMiddleware(mux)
}

// Close stops every session.
func (s *WebServer) Close() {
	s.sessions.Close()
}

// startWebServer starts the web server with both API and UI
func startWebServer(ctx context.Context, configPath, host, port, locale string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if host != "" {
		cfg.Web.Host = host
	}
	if port != "" {
		if _, err := fmt.Sscanf(port, "%d", &cfg.Web.Port); err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}
	}
	if locale != "" {
		cfg.Locale = locale
	}
	if err := cfg.Validate(); err != nil {
		webLogger.Warnf("searches will fail until credentials are configured: %v", err)
	}

	client := newSearchClient(cfg)

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				webLogger.Warnf("failed to close history: %v", err)
			}
		}()
	}

	webServer := newWebServer(cfg, withHistory(client, store), store)
	defer webServer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go webServer.sessions.Run(ctx, evictInterval)

	reloader, err := newConfigReloader(configPath, client)
	if err != nil {
		webLogger.Warnf("config reload disabled: %v", err)
	} else {
		defer reloader.Close()
		go reloader.Run(ctx)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           webServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	// Start server in goroutine
	go func() {
		webLogger.Infof("Starting web server on http://%s", cfg.Addr())
		webLogger.Infof("Available endpoints:")
		webLogger.Infof("  Web UI:")
		webLogger.Infof("    GET / - Search page")
		webLogger.Infof("    POST /search, /type, /more - Session actions")
		webLogger.Infof("  API:")
		webLogger.Infof("    GET /api/search - Single stateless search")
		webLogger.Infof("    POST /api/sessions - Create a search session")
		webLogger.Infof("    GET /api/sessions/{id} - Session state")
		webLogger.Infof("    POST /api/sessions/{id}/{query,search,type,more} - Session actions")
		webLogger.Infof("    GET /api/sessions/{id}/ws - Live session updates")
		webLogger.Infof("    GET /api/history - Recent searches")
		webLogger.Infof("    GET /health - Health check")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sigCh:
	case <-ctx.Done():
	}

	webLogger.Infof("Shutting down web server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// Web UI Handlers

// session returns the controller bound to the request's cookie, creating a
// new session (and cookie) when there is none or it expired.
func (s *WebServer) session(w http.ResponseWriter, r *http.Request) (string, *session.Controller) {
	var current string
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		current = cookie.Value
	}
	id, c := s.sessions.GetOrCreate(current)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id, c
}

// handleHome renders the search page. A q parameter runs that search first
// and redirects back so the page can be reloaded safely.
func (s *WebServer) handleHome(w http.ResponseWriter, r *http.Request) {
	id, c := s.session(w, r)

	if r.URL.Query().Has("q") {
		t, err := search.ParseType(r.URL.Query().Get("type"))
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid parameters: %v", err), http.StatusBadRequest)
			return
		}
		submitSearch(detached(r), c, r.URL.Query().Get("q"), t)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := components.BuildPageData(id, c.Snapshot(), s.locale, s.renderSvc)
	if err := components.Page(data).Render(r.Context(), w); err != nil {
		http.Error(w, fmt.Sprintf("Template error: %v", err), http.StatusInternalServerError)
	}
}

// handleResults renders only the results region of the current session.
func (s *WebServer) handleResults(w http.ResponseWriter, r *http.Request) {
	id, c := s.session(w, r)

	w.Header().Set("Cache-Control", "no-store")
	data := components.BuildPageData(id, c.Snapshot(), s.locale, s.renderSvc)
	if err := components.Results(data).Render(r.Context(), w); err != nil {
		http.Error(w, fmt.Sprintf("Template error: %v", err), http.StatusInternalServerError)
	}
}

// handleSearch runs a fresh search for the submitted form.
func (s *WebServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	_, c := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("Invalid form: %v", err), http.StatusBadRequest)
		return
	}

	t, err := search.ParseType(r.PostForm.Get("type"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid parameters: %v", err), http.StatusBadRequest)
		return
	}
	submitSearch(detached(r), c, r.PostForm.Get("q"), t)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleType switches the result type, re-running an existing search. A
// posted q replaces the query first so the re-run uses the text in the box.
func (s *WebServer) handleType(w http.ResponseWriter, r *http.Request) {
	_, c := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("Invalid form: %v", err), http.StatusBadRequest)
		return
	}

	raw := r.PostForm.Get("type")
	t, err := search.ParseType(raw)
	if err != nil || raw == "" {
		http.Error(w, "type must be one of all, image, video", http.StatusBadRequest)
		return
	}
	if r.PostForm.Has("q") {
		c.SetQuery(r.PostForm.Get("q"))
	}
	c.SetType(detached(r), t)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleMore appends the next page of results.
func (s *WebServer) handleMore(w http.ResponseWriter, r *http.Request) {
	_, c := s.session(w, r)
	c.LoadMore(detached(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// detached keeps the request's values but not its cancellation, so a client
// that disconnects mid-search does not abandon the session's call.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// submitSearch sets the query and type of c and runs a fresh search. When
// the session already searched, the type change is itself the re-run.
func submitSearch(ctx context.Context, c *session.Controller, query string, t search.Type) session.State {
	c.SetQuery(query)
	if current := c.Snapshot(); t != current.Type {
		if current.HasSearched {
			return c.SetType(ctx, t)
		}
		c.SetType(ctx, t)
	}
	return c.Search(ctx)
}

// handleStatic serves static assets from embedded files
func (s *WebServer) handleStatic(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// Remove /static/ prefix and add web/static/ prefix for embedded filesystem
	filePath := "web/static/" + strings.TrimPrefix(path, "/static/")

	content, err := staticFS.ReadFile(filePath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch {
	case strings.HasSuffix(path, ".css"):
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	case strings.HasSuffix(path, ".js"):
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	case strings.HasSuffix(path, ".svg"):
		w.Header().Set("Content-Type", "image/svg+xml")
	case strings.HasSuffix(path, ".ico"):
		w.Header().Set("Content-Type", "image/x-icon")
	case strings.HasSuffix(path, ".png"):
		w.Header().Set("Content-Type", "image/png")
	}

	// Set cache headers for static assets
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := w.Write(content); err != nil {
		webLogger.Warnf("error writing static content: %v", err)
	}
}
