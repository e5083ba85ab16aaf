package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mesaflow/booking-backend/internal/auth"
	"github.com/mesaflow/booking-backend/internal/booking"
	bookingHttp "github.com/mesaflow/booking-backend/internal/booking/http"
	"github.com/mesaflow/booking-backend/internal/business"
	businessHttp "github.com/mesaflow/booking-backend/internal/business/http"
	"github.com/mesaflow/booking-backend/internal/customer"
	customerHttp "github.com/mesaflow/booking-backend/internal/customer/http"
	"github.com/mesaflow/booking-backend/internal/media"
	mediaHttp "github.com/mesaflow/booking-backend/internal/media/http"
	"github.com/mesaflow/booking-backend/internal/reservation"
	reservationHttp "github.com/mesaflow/booking-backend/internal/reservation/http"
	"github.com/mesaflow/booking-backend/internal/schedule"
	scheduleHttp "github.com/mesaflow/booking-backend/internal/schedule/http"
	"github.com/mesaflow/booking-backend/internal/table"
	tableHttp "github.com/mesaflow/booking-backend/internal/table/http"
	"github.com/mesaflow/booking-backend/internal/user"
)

// Config carries everything the router needs to assemble middleware and
// register module routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins in production

	UserService        user.Service
	BusinessService    business.Service
	ScheduleService    schedule.Service
	CustomerService    customer.Service
	TableService       table.Service
	BookingService     booking.Service
	MediaService       media.Service
	ReservationService reservation.Service

	JWTManager *auth.JWTManager
	Logger     zerolog.Logger
}

// NewRouter assembles the gin engine: global middleware (request ID,
// structured logging, recovery, CORS), then every module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(cfg.Logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	authMiddleware := auth.Required(cfg.JWTManager)
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	businessHandler := businessHttp.NewHandler(cfg.BusinessService)
	scheduleHandler := scheduleHttp.NewHandler(cfg.ScheduleService, cfg.BusinessService)
	customerHandler := customerHttp.NewHandler(cfg.CustomerService, cfg.BusinessService)
	tableHandler := tableHttp.NewHandler(cfg.TableService, cfg.BusinessService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.BusinessService)
	mediaHandler := mediaHttp.NewHandler(cfg.MediaService, cfg.BusinessService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		businessHttp.RegisterRoutes(v1, businessHandler, authMiddleware, sysAdminMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware)
		customerHttp.RegisterRoutes(v1, customerHandler, authMiddleware)
		tableHttp.RegisterRoutes(v1, tableHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		mediaHttp.RegisterRoutes(v1, mediaHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler)
	}

	return r
}

func corsConfig(cfg Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}

	if cfg.IsProduction {
		c.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		c.AllowAllOrigins = true
	}

	return c
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
