package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/bufbuild/connect-go"
	grpchealth "github.com/bufbuild/connect-grpchealth-go"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"droscher.com/BeerCritic/configs"
	"droscher.com/BeerCritic/pkg/auth"
	"droscher.com/BeerCritic/pkg/integrations"
	"droscher.com/BeerCritic/pkg/notify"
	"droscher.com/BeerCritic/pkg/qrcode"
	"droscher.com/BeerCritic/pkg/repository"
	"droscher.com/BeerCritic/pkg/server"
	"droscher.com/BeerCritic/pkg/server/rpc"
	"droscher.com/BeerCritic/pkg/service"
)

const timeout = 5 * time.Second

type ServeCmd struct {
	ConfigFile string `default:".BeerCritic.toml" help:"Path to config file" short:"c"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	logger := newLogger(ctx, true)
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	configs.LoadDotEnv(logger)

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	mailer, err := notify.NewMailer(conf.Mail, logger)
	if err != nil {
		logger.Error("error configuring mail", zap.Error(err))

		return err
	}

	tokens := auth.NewTokens(conf.Auth)
	sessions := newSessionManager(conf.Session)
	authManager := auth.NewAuthManager(tokens, sessions, repo, logger)

	beers := service.NewBeerService(repo, qrcode.NewGenerator(conf.Server.BaseURL), lookups(conf, logger), conf.Catalog.DefaultSort, logger)
	reviews := service.NewReviewService(repo, logger)
	comments := service.NewCommentService(repo, logger)
	users := service.NewUserService(repo, tokens, mailer, conf.Server.BaseURL, logger)

	mux := http.NewServeMux()

	path, handler := rpc.NewCatalogServiceHandler(rpc.NewCatalogServer(beers, reviews, logger),
		connect.WithInterceptors(authManager.ConnectAuthInterceptor()))
	mux.Handle(path, handler)

	checker := grpchealth.NewStaticChecker(rpc.CatalogServiceName)
	mux.Handle(grpchealth.NewHandler(checker))

	mux.Handle("/", server.NewRouter(sessions, authManager,
		server.NewBeerServer(beers, logger),
		server.NewReviewServer(reviews, comments, logger),
		server.NewUserServer(users, reviews, authManager, logger)))

	address := fmt.Sprintf(":%d", conf.Server.Port)

	corsHandler := configureCORS(mux)
	serverHandler := h2c.NewHandler(corsHandler, &http2.Server{})

	svr := &http.Server{
		Addr:              address,
		ReadHeaderTimeout: timeout,
		Handler:           serverHandler,
	}

	logger.Info("listening", zap.String("address", address), zap.String("base_url", conf.Server.BaseURL))

	err = svr.ListenAndServe()
	if err != nil {
		logger.Error("failed to start server", zap.Error(err))

		return err
	}

	return nil
}

func newSessionManager(conf configs.Session) *scs.SessionManager {
	sessions := scs.New()
	sessions.Lifetime = conf.Lifetime
	sessions.Cookie.Name = conf.CookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Persist = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = conf.CookieSecure

	return sessions
}

// lookups builds the configured integrations, skipping unknown names.
func lookups(conf *configs.Config, logger *zap.Logger) []integrations.Integration {
	found := make([]integrations.Integration, 0, len(conf.Integrations.Beer))

	for _, name := range conf.Integrations.Beer {
		integration := integrations.GetIntegration(name, logger)
		if integration == nil {
			logger.Warn("unknown beer integration", zap.String("integration", name))

			continue
		}

		found = append(found, integration)
	}

	return found
}

func configureCORS(mux *http.ServeMux) http.Handler {
	corsOpts := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders: []string{
			"accept",
			"accept-encoding",
			"authorization",
			"connect-protocol-version",
			"connect-timeout-ms",
			"content-type",
			"grpc-timeout",
			"origin",
			"x-grpc-web",
			"x-user-agent",
		},
		ExposedHeaders: []string{
			"connect-protocol-version",
			"grpc-message",
			"grpc-status",
			"grpc-status-details-bin",
		},
		MaxAge: 86400, // 24 hours
	})

	return corsOpts.Handler(mux)
}
