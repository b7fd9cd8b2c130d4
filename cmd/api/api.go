package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bazaar/docs" // registers the swagger spec
	"bazaar/internal/auth"
	"bazaar/internal/authz"
	"bazaar/internal/domain/accounts"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/storage"
	"bazaar/internal/lifecycle"
	"bazaar/internal/notifications"
	"bazaar/internal/provisioning"
	"bazaar/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	resolver      *authz.Resolver
	engine        *lifecycle.Engine
	dispatcher    *notifications.Dispatcher
	provisioner   *provisioning.Provisioner
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	auth        authConfig
	orders      ordersConfig
	cors        corsConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleTime  string
}

type ordersConfig struct {
	refSalt string
}

type corsConfig struct {
	allowedOrigins []string
}

func (c config) production() bool {
	return c.env == "production"
}

// newApplication wires the services on top of a storage container.
func newApplication(cfg config, store *storage.Container, logger *zap.SugaredLogger) (*application, error) {
	refs, err := orders.NewReferenceEncoder(cfg.orders.refSalt)
	if err != nil {
		return nil, err
	}

	authenticator := auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.iss, cfg.auth.token.exp)
	resolver := authz.NewResolver(store.Profiles, store.Products, store.Orders)
	dispatcher := notifications.NewDispatcher(store.Inbox, logger)

	engine := lifecycle.NewEngine(
		store.Orders,
		store.Products,
		resolver,
		dispatcher,
		orders.NewNumberGenerator(cfg.orders.refSalt),
		refs,
		logger,
	)

	return &application{
		config:        cfg,
		store:         store,
		logger:        logger,
		authenticator: authenticator,
		resolver:      resolver,
		engine:        engine,
		dispatcher:    dispatcher,
		provisioner:   provisioning.NewProvisioner(store.Accounts, store.Profiles),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(
			cfg.rateLimiter.RequestsPerTimeFrame,
			cfg.rateLimiter.TimeFrame,
		),
	}, nil
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.cors.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true, // the credential travels in a cookie
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	seller := app.RequireRole(accounts.RoleSeller)
	shopkeeper := app.RequireRole(accounts.RoleShopkeeper)

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("doc.json")))

		r.Route("/auth", func(r chi.Router) {
			r.Use(app.RateLimiterMiddleware)
			r.Post("/signup", app.signupHandler)
			r.Post("/login", app.loginHandler)
			r.Post("/logout", app.logoutHandler)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.getProfileHandler)
			r.Post("/", app.createProfileHandler)
		})

		r.Route("/products", func(r chi.Router) {
			r.With(app.OptionalAuthMiddleware).Get("/", app.listProductsHandler)
			r.With(app.AuthTokenMiddleware, seller).Post("/", app.createProductHandler)
			r.With(app.AuthTokenMiddleware, seller).Get("/my-products", app.myProductsHandler)

			r.Route("/{productID}", func(r chi.Router) {
				r.Get("/", app.getProductHandler)
				r.With(app.AuthTokenMiddleware).Put("/", app.updateProductHandler)
				r.With(app.AuthTokenMiddleware).Delete("/", app.deleteProductHandler)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.With(shopkeeper).Post("/", app.createOrderHandler)
			r.Get("/my-orders", app.myOrdersHandler)
			r.With(seller).Get("/received", app.receivedOrdersHandler)
			r.With(seller).Put("/{orderID}", app.updateOrderStatusHandler)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.listNotificationsHandler)
			r.Post("/read", app.markNotificationsReadHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
