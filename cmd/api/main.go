package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"barbershop/internal/config"
	"barbershop/internal/database"
	"barbershop/internal/domain"
	"barbershop/internal/middleware"
	"barbershop/internal/modules/auth"
	"barbershop/internal/modules/directory"
	"barbershop/internal/modules/live"
	"barbershop/internal/modules/revenue"
	"barbershop/internal/modules/schedule"
	jwtsvc "barbershop/internal/pkg/jwt"
	"barbershop/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.Client{},
		&domain.Staff{},
		&domain.Service{},
		&domain.Appointment{},
		&domain.User{},
	); err != nil {
		log.Fatal(err)
	}

	clientRepo := repository.NewClientRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := live.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	directoryService := directory.NewService(clientRepo, staffRepo, serviceRepo)
	directoryHandler := directory.NewHandler(directoryService)

	scheduleService := schedule.NewService(appointmentRepo, clientRepo, staffRepo, serviceRepo, hub)
	scheduleHandler := schedule.NewHandler(scheduleService)

	revenueService := revenue.NewService(appointmentRepo)
	revenueHandler := revenue.NewHandler(revenueService)

	liveHandler := live.NewHandler(hub)

	r := gin.New()
	r.Use(gin.Logger(), middleware.RequestLogger(), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// everything else requires a logged-in identity
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			directoryHandler.RegisterRoutes(protected)
			scheduleHandler.RegisterRoutes(protected)
			revenueHandler.RegisterRoutes(protected)
			liveHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
