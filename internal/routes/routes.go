package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/drivebook/car-rental-api/internal/audit"
	"github.com/drivebook/car-rental-api/internal/cache"
	"github.com/drivebook/car-rental-api/internal/config"
	"github.com/drivebook/car-rental-api/internal/handlers"
	infraRepo "github.com/drivebook/car-rental-api/internal/infra/repository"
	"github.com/drivebook/car-rental-api/internal/metrics"
	"github.com/drivebook/car-rental-api/internal/middleware"
	"github.com/drivebook/car-rental-api/internal/notify"
	"github.com/drivebook/car-rental-api/internal/payments"
	"github.com/drivebook/car-rental-api/internal/storage"
	ucbooking "github.com/drivebook/car-rental-api/internal/usecase/booking"
	uccontact "github.com/drivebook/car-rental-api/internal/usecase/contact"
	ucreview "github.com/drivebook/car-rental-api/internal/usecase/review"
)

// Deps are the process-lifetime collaborators, constructed in main and
// injected here. Nothing below reaches for globals.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Ratings  *cache.RatingsCache
	Storage  *storage.S3Storage
	Payments *payments.Provider
	Mail     *notify.Dispatcher
	Audit    *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	metrics.Register()

	// ------------------------------
	// INFRA
	// ------------------------------
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	contactRepo := infraRepo.NewContactGormRepository(d.DB)

	// ------------------------------
	// USE CASES
	// ------------------------------
	createBookingUC := ucbooking.NewCreateBooking(bookingRepo, d.Audit)
	updateStatusUC := ucbooking.NewUpdateBookingStatus(bookingRepo, d.Audit)
	availabilityUC := ucbooking.NewCheckAvailability(bookingRepo)
	createReviewUC := ucreview.NewCreateReview(reviewRepo, d.Audit)
	saveContactUC := uccontact.NewSave(contactRepo)

	// ------------------------------
	// HANDLERS
	// ------------------------------
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	catalogHandler := handlers.NewCatalogHandler(d.DB, d.Ratings, d.Storage)
	bookingHandler := handlers.NewBookingHandler(
		d.DB,
		createBookingUC,
		updateStatusUC,
		availabilityUC,
		d.Payments,
		d.Mail,
		d.Audit,
	)
	reviewHandler := handlers.NewReviewHandler(d.DB, createReviewUC, d.Ratings)
	rateHandler := handlers.NewRateHandler(d.DB)
	contactHandler := handlers.NewContactHandler(d.DB, saveContactUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ------------------------------
	// PROBES
	// ------------------------------
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ------------------------------
	// API
	// ------------------------------
	api := r.Group("/api")
	{
		// public
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/catalog", catalogHandler.List)
		api.GET("/catalog/:id", catalogHandler.GetByID)

		api.GET("/reviews", reviewHandler.List)
		api.GET("/reviews/:id", reviewHandler.GetByID)

		api.GET("/rates", rateHandler.List)
		api.GET("/rates/:id", rateHandler.GetByID)

		api.GET("/contacts", contactHandler.List)
		api.GET("/contacts/type/:type", contactHandler.ListByType)
		api.GET("/contacts/:id", contactHandler.GetByID)

		// authenticated
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/auth/me", authHandler.Me)

			secured.POST("/catalog", catalogHandler.Create)
			secured.PUT("/catalog/:id", catalogHandler.Update)
			secured.DELETE("/catalog/:id", catalogHandler.Delete)
			secured.POST("/catalog/:id/image", catalogHandler.UploadImage)

			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/:id", bookingHandler.GetByID)
			secured.POST("/bookings", bookingHandler.Create)
			secured.POST("/bookings/check-availability", bookingHandler.CheckAvailability)
			secured.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			secured.POST("/reviews", reviewHandler.Create)
			secured.PUT("/reviews/:id", reviewHandler.Update)
			secured.DELETE("/reviews/:id", reviewHandler.Delete)

			secured.POST("/rates", rateHandler.Create)
			secured.PUT("/rates/:id", rateHandler.Update)
			secured.DELETE("/rates/:id", rateHandler.Delete)

			secured.POST("/contacts", contactHandler.Create)
			secured.PUT("/contacts/:id", contactHandler.Update)
			secured.DELETE("/contacts/:id", contactHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
