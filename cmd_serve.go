package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blogem/campus-admin/agent"
	"github.com/blogem/campus-admin/authenticator"
	"github.com/blogem/campus-admin/config"
	"github.com/blogem/campus-admin/controllers"
	authmiddleware "github.com/blogem/campus-admin/middleware"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		classifier, err := newClassifier(ctx, a.cfg)
		if err != nil {
			return err
		}
		queries := agent.NewRouter(a.services, classifier, logger.Named("agent"))

		var provider authenticator.Provider
		if a.cfg.Auth.Enabled {
			provider, err = authenticator.NewOpenIDProvider(ctx, authenticator.OpenIDConfig{
				Domain:       a.cfg.Auth.Domain,
				ClientID:     a.cfg.Auth.ClientID,
				ClientSecret: a.cfg.Auth.ClientSecret,
				CallbackURL:  a.cfg.Auth.CallbackURL,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize OpenID provider: %w", err)
			}
		}

		ctrl := controllers.NewControllers(a.services, queries, provider, logger.Named("auth"))
		r, err := setupRouter(ctrl, a.cfg)
		if err != nil {
			return fmt.Errorf("failed to setup router: %w", err)
		}

		srv := &http.Server{
			Addr:              ":" + a.cfg.Server.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		logger.Info("campus admin starting",
			zap.String("port", a.cfg.Server.Port),
			zap.String("database", a.cfg.Database.Path),
			zap.Bool("auth", a.cfg.Auth.Enabled),
			zap.Bool("chat", classifier != nil))

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

// newClassifier returns nil when no Gemini key is configured; /chat then
// answers with an unavailable envelope
func newClassifier(ctx context.Context, cfg *config.Config) (agent.Classifier, error) {
	if cfg.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, chat routing disabled")
		return nil, nil
	}

	classifier, err := agent.NewGeminiClassifier(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger.Named("gemini"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize classifier: %w", err)
	}
	return classifier, nil
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, cfg *config.Config) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(authmiddleware.RequestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(middleware.Compress(5))

	if cfg.Auth.Enabled {
		sessionHandler, err := session.Sessioner(session.Options{
			Provider:    "memory",
			CookieName:  "campus_admin_session",
			Secure:      cfg.Server.UseHTTPS,
			Gclifetime:  3600,
			Maxlifetime: 3600,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session: %w", err)
		}
		r.Use(sessionHandler)
	}

	ctrl.Mount(r, cfg.Auth.Enabled)

	return r, nil
}
