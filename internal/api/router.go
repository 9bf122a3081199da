package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shareit/internal/booking"
	bookingHttp "shareit/internal/booking/http"
	"shareit/internal/identity"
	"shareit/internal/item"
	itemHttp "shareit/internal/item/http"
	"shareit/internal/request"
	requestHttp "shareit/internal/request/http"
	"shareit/internal/user"
	userHttp "shareit/internal/user/http"
)

// Config carries the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	// MetricsRegistry receives the HTTP collectors; nil means the
	// default prometheus registerer.
	MetricsRegistry prometheus.Registerer

	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService request.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, request ids,
// metrics) and registering routes for the modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// - Logger: logs request information to the console.
	// - Recovery: captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(requestID())

	metrics := NewMetrics(cfg.MetricsRegistry)
	r.Use(metrics.Middleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	// Caller identity arrives pre-resolved in the X-Sharer-User-Id header.
	callerRequired := identity.Required()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, callerRequired)
		bookingHttp.RegisterRoutes(root, bookingHandler, callerRequired)
		requestHttp.RegisterRoutes(root, requestHandler, callerRequired)
	}

	return r
}

// requestID tags every request with an X-Request-Id for correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}
