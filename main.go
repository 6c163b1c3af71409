package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shelfwatch/shelfwatch/authenticator"
	"github.com/shelfwatch/shelfwatch/config"
	"github.com/shelfwatch/shelfwatch/controllers"
	"github.com/shelfwatch/shelfwatch/cooldown"
	"github.com/shelfwatch/shelfwatch/database"
	"github.com/shelfwatch/shelfwatch/eventlog"
	authmiddleware "github.com/shelfwatch/shelfwatch/middleware"
	"github.com/shelfwatch/shelfwatch/push"
	"github.com/shelfwatch/shelfwatch/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	// Load environment variables from .env file when present; in
	// production they usually come from the process environment.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Pick the event log backend: spreadsheet when configured, local
	// SQLite otherwise, and a no-op store as the last resort.
	var store eventlog.Store
	switch {
	case cfg.Sheet.Configured():
		store = eventlog.NewSheetsStore(eventlog.SheetsConfig{
			SpreadsheetID:       cfg.Sheet.SpreadsheetID,
			SheetName:           cfg.Sheet.SheetName,
			ServiceAccountEmail: cfg.Sheet.ServiceAccountEmail,
			ServiceAccountKey:   cfg.Sheet.ServiceAccountKey,
		})
		logger.Info("event log backend: google sheets", zap.String("spreadsheet", cfg.Sheet.SpreadsheetID))
	case cfg.SQLitePath != "":
		db, err := database.Open(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open local event log", zap.Error(err))
		}
		defer db.Close()
		store = eventlog.NewSQLiteStore(db)
		logger.Info("event log backend: sqlite", zap.String("path", cfg.SQLitePath))
	default:
		logger.Warn("no event log configured, alerts will not be recorded")
		store = eventlog.Disabled{}
	}

	var notifier push.Client
	if cfg.Push.Configured() {
		notifier = push.NewOneSignalClient(cfg.Push.AppID, cfg.Push.APIKey)
	} else {
		logger.Warn("push delivery not configured, alerts will be logged only")
	}

	targetURL := ""
	if cfg.PublicURL != "" {
		targetURL = strings.TrimSuffix(cfg.PublicURL, "/") + "/checklist"
	}

	srvs := services.NewServices(services.Deps{
		Store:      store,
		Notifier:   notifier,
		Gate:       cooldown.NewGate(cooldown.NewMemoryStore(), cfg.CooldownWindow),
		Logger:     logger,
		FetchLimit: cfg.FetchLimit,
		TargetURL:  targetURL,
	})

	ctrl := controllers.NewControllers(srvs, logger)

	r, err := setupRouter(cfg, ctrl, logger)
	if err != nil {
		logger.Fatal("failed to setup router", zap.Error(err))
	}

	logger.Info("shelfwatch listening",
		zap.String("port", cfg.Port),
		zap.String("access_mode", cfg.Access.Mode),
	)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// setupRouter configures all routes for the selected access mode
func setupRouter(cfg *config.Config, ctrl *controllers.Controllers, logger *zap.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(authmiddleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/alert", ctrl.Alert.Submit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "shelfwatch"}`)
	})

	// Static assets (icons, web app manifest for push subscription)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	switch cfg.Access.Mode {
	case config.AccessModeSecret:
		if cfg.Access.ManagerKey == "" {
			logger.Warn("MANAGER_KEY not configured, manager views fail closed")
		}

		r.Get("/", ctrl.Home.Index)
		r.Group(func(r chi.Router) {
			r.Use(authmiddleware.RequireSharedKey(cfg.Access.ManagerKey, logger))
			r.Get("/manager", ctrl.Manager.Index)
			r.Get("/manager.csv", ctrl.Manager.CSV)
			r.Get("/checklist", ctrl.Manager.Checklist)
		})

	case config.AccessModeSession:
		if cfg.Access.SessionSecret == "" {
			return nil, fmt.Errorf("SESSION_SECRET is required in session mode")
		}
		if cfg.Access.PasswordHash == "" {
			logger.Warn("MANAGER_PASSWORD_HASH not configured, all logins will be rejected")
		}

		secure := cfg.UseHTTPS
		r.Get("/", ctrl.Home.Index)
		r.Get("/login", ctrl.Auth.ShowLogin)
		r.Post("/login", ctrl.Auth.Login(cfg.Access.PasswordHash, cfg.Access.SessionSecret, secure))
		r.Get("/logout", ctrl.Auth.Logout(secure))
		r.Group(func(r chi.Router) {
			r.Use(authmiddleware.RequireSession(cfg.Access.SessionSecret))
			r.Get("/manager", ctrl.Manager.Index)
			r.Get("/manager.csv", ctrl.Manager.CSV)
			r.Get("/checklist", ctrl.Manager.Checklist)
		})

	case config.AccessModeOIDC:
		provider, err := authenticator.NewOpenIDProvider(authenticator.OpenIDConfig{
			Domain:       cfg.Access.OIDCDomain,
			ClientID:     cfg.Access.OIDCClientID,
			ClientSecret: cfg.Access.OIDCClientSecret,
			CallbackURL:  cfg.Access.OIDCCallbackURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize identity provider: %w", err)
		}

		// Server-side session for the OIDC state and identity
		sessionHandler, err := session.Sessioner(session.Options{
			Provider:    "memory",
			CookieName:  "shelfwatch_session",
			Secure:      cfg.UseHTTPS,
			Gclifetime:  3600,
			Maxlifetime: 3600,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session: %w", err)
		}

		r.Group(func(r chi.Router) {
			r.Use(sessionHandler)

			r.Get("/", ctrl.Home.IndexDelegated)
			r.Get("/login", ctrl.Auth.LoginDelegated(provider))
			r.Get("/callback", ctrl.Auth.CallbackDelegated(provider))
			r.Get("/logout", ctrl.Auth.LogoutDelegated)

			r.Group(func(r chi.Router) {
				r.Use(authmiddleware.RequireIdentity)
				r.Get("/manager", ctrl.Manager.Index)
				r.Get("/manager.csv", ctrl.Manager.CSV)
				r.Get("/checklist", ctrl.Manager.Checklist)
			})
		})

	default:
		return nil, fmt.Errorf("unknown access mode %q", cfg.Access.Mode)
	}

	return r, nil
}
