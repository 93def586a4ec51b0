package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/Shefwef/ghuroo-api/internal/handler"
	authHandler "github.com/Shefwef/ghuroo-api/internal/handler/auth"
	blogHandler "github.com/Shefwef/ghuroo-api/internal/handler/blog"
	bookingHandler "github.com/Shefwef/ghuroo-api/internal/handler/booking"
	notificationHandler "github.com/Shefwef/ghuroo-api/internal/handler/notification"
	reviewHandler "github.com/Shefwef/ghuroo-api/internal/handler/review"
	tourHandler "github.com/Shefwef/ghuroo-api/internal/handler/tour"
	userHandler "github.com/Shefwef/ghuroo-api/internal/handler/user"
	"github.com/Shefwef/ghuroo-api/internal/middleware"
)

type Config struct {
	RateLimitEnabled  bool
	RateLimit         rate.Limit
	RateBurst         int
	PrometheusEnabled bool
	MetricsPath       string
	MetricsPrefix     string
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         *authHandler.Handler
	notificationH *notificationHandler.Handler
	tourH         *tourHandler.Handler
	bookingH      *bookingHandler.Handler
	reviewH       *reviewHandler.Handler
	blogH         *blogHandler.Handler
	userH         *userHandler.Handler
	healthH       *handler.HealthHandler
	metrics       *routerMetrics
	config        Config
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
	}
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	notificationH *notificationHandler.Handler,
	tourH *tourHandler.Handler,
	bookingH *bookingHandler.Handler,
	reviewH *reviewHandler.Handler,
	blogH *blogHandler.Handler,
	userH *userHandler.Handler,
	healthH *handler.HealthHandler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         authH,
		notificationH: notificationH,
		tourH:         tourH,
		bookingH:      bookingH,
		reviewH:       reviewH,
		blogH:         blogH,
		userH:         userH,
		healthH:       healthH,
		metrics:       initRouterMetrics(config.MetricsPrefix),
		config:        config,
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
	)

	if config.RateLimitEnabled {
		engine.Use(middleware.RateLimit(config.RateLimit, config.RateBurst))
	}

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	if r.config.PrometheusEnabled {
		path := r.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	api := r.engine.Group("/api/v1")

	r.healthH.RegisterRoutes(api)
	r.authH.RegisterRoutes(api)
	r.notificationH.RegisterRoutes(api, r.auth)
	r.tourH.RegisterRoutes(api, r.auth)
	r.bookingH.RegisterRoutes(api, r.auth)
	r.reviewH.RegisterRoutes(api, r.auth)
	r.blogH.RegisterRoutes(api, r.auth)
	r.userH.RegisterRoutes(api, r.auth)
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
