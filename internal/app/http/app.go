package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"citiesmanager/internal/config"
	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/lib/logger/sl"
	appmiddleware "citiesmanager/internal/middleware"
	httprouters "citiesmanager/internal/transport/http"
	"citiesmanager/internal/transport/http/dto/response"

	"github.com/arl/statsviz"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// AccessTokenValidator fully validates bearer tokens on protected routes.
type AccessTokenValidator interface {
	Validate(token string) (*models.TokenClaims, error)
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	tokens  AccessTokenValidator
	limiter *appmiddleware.RateLimiter
	host    string
	port    string
}

func New(log *slog.Logger, cfg *config.Config, tokens AccessTokenValidator, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTP.WriteTimeout

	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", sl.Err(err))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		tokens:  tokens,
		limiter: appmiddleware.NewRateLimiter(log, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TTL),
		host:    cfg.HTTP.Host,
		port:    cfg.HTTP.Port,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("address", s.address()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Server) address() string {
	return net.JoinHostPort(s.host, s.port)
}

func (s *Server) jwtMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return s.tokens.Validate(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			s.log.Debug("bearer token rejected", sl.Err(err))
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		},
	})
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	account := s.e.Group("/api/v1/account", s.limiter.Middleware)
	{
		account.POST("/register", s.routers.Register)
		account.POST("/login", s.routers.Login)
		account.GET("/logout", s.routers.Logout)
		account.POST("/token", s.routers.Refresh)
	}

	v1 := s.e.Group("/api/v1/cities", s.jwtMiddleware())
	{
		v1.GET("", s.routers.GetCities)
		v1.GET("/:id", s.routers.GetCity).Name = "cities.v1.get"
		v1.POST("", s.routers.PostCity)
		v1.PUT("/:id", s.routers.PutCity)
		v1.DELETE("/:id", s.routers.DeleteCity)
	}

	v2 := s.e.Group("/api/v2/cities", s.jwtMiddleware())
	{
		v2.GET("", s.routers.GetCityNames)
		v2.GET("/:id", s.routers.GetCityName)
	}
}
