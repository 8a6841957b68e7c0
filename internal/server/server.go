package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"talently/internal/config"
	"talently/internal/database"
	"talently/internal/events"
	"talently/internal/lock"
	"talently/internal/middleware"
	"talently/internal/modules/auth"
	"talently/internal/modules/booking"
	"talently/internal/modules/dashboard"
	"talently/internal/modules/monitoring"
	"talently/internal/modules/notification"
	"talently/internal/modules/session"
	"talently/internal/modules/talent"
	"talently/internal/pkg/jwt"
	"talently/internal/pkg/metrics"
	"talently/internal/repository"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the HTTP layer is built on.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Tokens *jwt.Service
	Locker lock.Locker
	// Broker receives booking events next to the notification hub. Nil means none.
	Broker events.Publisher
	// Metrics collects request timings and errors. Nil gets a fresh registry.
	Metrics *metrics.Registry
}

type Server struct {
	cfg    *config.Config
	db     *gorm.DB
	router *gin.Engine
	hub    *notification.Hub
}

func New(d Deps) *Server {
	if d.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	businessRepo := repository.NewBusinessRepository(d.DB)
	talentRepo := repository.NewTalentRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)

	sessions := session.NewManager(d.Tokens, businessRepo, session.Options{
		CookieName: d.Config.SessionCookieName,
		Secure:     d.Config.CookieSecure,
	})

	hub := notification.NewHub(businessRepo)
	publisher := events.Fanout{hub}
	if d.Broker != nil {
		publisher = append(publisher, d.Broker)
	}

	authHandler := auth.NewHandler(auth.NewService(businessRepo, d.Config.BcryptCost), sessions)
	talentHandler := talent.NewHandler(talent.NewService(talentRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, talentRepo, d.Locker, publisher))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(talentRepo, bookingRepo))
	notificationHandler := notification.NewHandler(hub, d.Config.CORSAllowedOrigins)

	m := d.Metrics
	if m == nil {
		m = metrics.New()
	}
	monitoringHandler := monitoring.NewHandler(m)

	serviceName := d.Config.ServiceName
	if serviceName == "" {
		serviceName = "talently"
	}

	r := gin.New()
	r.Use(middleware.ErrorLogger(m))
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.RequestLogger(m))
	r.Use(middleware.CORS(d.Config.CORSAllowedOrigins))

	s := &Server{cfg: d.Config, db: d.DB, router: r, hub: hub}
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		talentHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("", sessions.Middleware())
		authHandler.RegisterProtectedRoutes(protected)
		notificationHandler.RegisterRoutes(protected)
		monitoringHandler.RegisterRoutes(protected)

		dash := v1.Group("/dashboard", sessions.Middleware())
		dashboardHandler.RegisterRoutes(dash)
		talentHandler.RegisterDashboardRoutes(dash)
		bookingHandler.RegisterDashboardRoutes(dash)
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		slog.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// ShutdownTimeout and disconnects live notification clients.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.cfg.HTTPAddr, "env", s.cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
