package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mesaflow/booking-backend/internal/api"
	"github.com/mesaflow/booking-backend/internal/assignment"
	"github.com/mesaflow/booking-backend/internal/auth"
	"github.com/mesaflow/booking-backend/internal/availability"
	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/customer"
	"github.com/mesaflow/booking-backend/internal/media"
	"github.com/mesaflow/booking-backend/internal/notify"
	"github.com/mesaflow/booking-backend/internal/pkg/storage"
	"github.com/mesaflow/booking-backend/internal/reservation"
	"github.com/mesaflow/booking-backend/internal/schedule"
	"github.com/mesaflow/booking-backend/internal/table"
	"github.com/mesaflow/booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	DBPool           *pgxpool.Pool
	JWTSecret        string
	JWTTTL           time.Duration
	BcryptCost       int
	MediaStoragePath string
	Logger           zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	log := cfg.Logger

	// Shared components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Business module
	bizRepo := business.NewPgxRepository(cfg.DBPool)
	bizService := business.NewService(bizRepo)

	// Schedule module
	scheduleRepo := schedule.NewPgxRepository(cfg.DBPool)
	scheduleService := schedule.NewService(scheduleRepo)

	// Customer module
	customerRepo := customer.NewPgxRepository(cfg.DBPool)
	customerService := customer.NewService(customerRepo)

	// Table module
	tableRepo := table.NewPgxRepository(cfg.DBPool)
	tableService := table.NewService(tableRepo)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, log)

	// Availability and assignment engines
	availEngine := availability.NewEngine(bizService, scheduleService, bookingRepo, log)
	assignEngine := assignment.NewEngine(bizService, tableRepo, bookingRepo, availEngine, log)

	// Notifications: both channels log-only until real providers are wired.
	notifyRepo := notify.NewPgxRepository(cfg.DBPool)
	logSender := notify.NewLogSender(log)
	dispatcher := notify.NewDispatcher(notifyRepo, logSender, logSender, log)

	// Media module
	mediaStore, err := storage.NewLocalStorage(cfg.MediaStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init media storage: %w", err)
	}
	mediaRepo := media.NewPgxRepository(cfg.DBPool)
	mediaService := media.NewService(mediaRepo, mediaStore, log)

	// Reservation flow ties the engines, the booking store and notifications
	// together behind the public endpoints.
	reservationService := reservation.NewService(
		bizService,
		customerService,
		availEngine,
		assignEngine,
		bookingRepo,
		dispatcher,
		log,
	)

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UserService:        userService,
		BusinessService:    bizService,
		ScheduleService:    scheduleService,
		CustomerService:    customerService,
		TableService:       tableService,
		BookingService:     bookingService,
		MediaService:       mediaService,
		ReservationService: reservationService,
		JWTManager:         jwtManager,
		Logger:             log,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
