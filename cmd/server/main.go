package main

import (
	"context"
	"log/slog"
	"os"

	shelfadmin "github.com/dmitrymomot/shelfadmin"
	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/modules/auth"
	"github.com/dmitrymomot/shelfadmin/modules/authors"
	"github.com/dmitrymomot/shelfadmin/modules/books"
	"github.com/dmitrymomot/shelfadmin/modules/profile"
	"github.com/dmitrymomot/shelfadmin/pkg/clientip"
	"github.com/dmitrymomot/shelfadmin/pkg/config"
	"github.com/dmitrymomot/shelfadmin/pkg/cookie"
	"github.com/dmitrymomot/shelfadmin/pkg/environment"
	"github.com/dmitrymomot/shelfadmin/pkg/httpserver"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/ratelimiter"
	"github.com/dmitrymomot/shelfadmin/pkg/requestid"
	"github.com/dmitrymomot/shelfadmin/pkg/session"
	"github.com/dmitrymomot/shelfadmin/svc/library"
	"github.com/dmitrymomot/shelfadmin/views"
)

type appConfig struct {
	Name string `env:"APP_NAME" envDefault:"shelfadmin"`
	Env  string `env:"APP_ENV" envDefault:"development"`
}

type serverConfig struct {
	App     appConfig
	HTTP    httpserver.Config
	Client  clientip.Config
	Cookie  cookie.Config
	Session session.Config
	Library library.Config
	Login   ratelimiter.Config `envPrefix:"LOGIN_"`
}

func main() {
	var cfg serverConfig
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.App.Env)
	log := logger.New(
		logger.WithEnvironment(env, cfg.App.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), session.LoggerExtractor()),
	)

	if err := run(context.Background(), cfg, env, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg serverConfig, env environment.Environment, log *slog.Logger) error {
	if env.IsProduction() {
		cfg.Session.Secure = true
	}

	proxies, err := clientip.ParseTrusted(cfg.Client.TrustedProxies)
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie, cookie.WithSecure(cfg.Session.Secure))
	if err != nil {
		return err
	}
	sessions := session.New(cookies, cfg.Session)

	api, err := library.NewFromConfig(cfg.Library, log)
	if err != nil {
		return err
	}

	store := ratelimiter.NewMemoryStore()
	defer store.Close()
	throttle, err := ratelimiter.NewBucket(store, cfg.Login)
	if err != nil {
		return err
	}

	errorHandler := handler.NewErrorHandler[shelfadmin.Context](log, handler.ErrorHandlerConfig{
		ErrorPage:  views.ErrorPage,
		ErrorToast: views.ErrorToast,
	})

	router := Router(RouterOptions{
		Env:      env,
		Log:      log,
		Sessions: sessions,

		TrustedProxies: proxies,

		Auth: auth.NewService(api, sessions, throttle, auth.Views{
			LoginPage: views.LoginPage,
			LoginForm: views.LoginForm,
		}, errorHandler, log),
		Authors: authors.NewService(api, authors.Views{
			AuthorsPage: views.AuthorsPage,
			AuthorPage:  views.AuthorPage,
		}, errorHandler, log),
		Books: books.NewService(api, cookies, books.Views{
			BooksPage:   views.BooksPage,
			BooksTable:  views.BooksTable,
			BookPage:    views.BookPage,
			NewBookPage: views.NewBookPage,
		}, errorHandler, log),
		Profile: profile.NewService(api, cookies, profile.Views{
			ProfilePage: views.ProfilePage,
		}, errorHandler, log),
	})

	log.InfoContext(ctx, "starting server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("api_url", cfg.Library.URL),
	)
	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}
