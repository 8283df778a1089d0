package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"roomreserve/internal/config"
	"roomreserve/internal/database"
	"roomreserve/internal/domain"
	"roomreserve/internal/middleware"
	"roomreserve/internal/modules/auth"
	"roomreserve/internal/modules/catalog"
	"roomreserve/internal/modules/linebot"
	"roomreserve/internal/modules/notify"
	"roomreserve/internal/modules/reservation"
	jwtsvc "roomreserve/internal/pkg/jwt"
	"roomreserve/internal/pkg/line"
	"roomreserve/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var messenger notify.Messenger
	if cfg.LineConfigured() {
		messenger, err = line.New(cfg.LineChannelSecret, cfg.LineChannelToken)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("LINE credentials missing, chat messaging disabled")
		messenger = line.Disabled{}
	}

	notifyService := notify.NewService(messenger, roomRepo, cfg.LineBasicID)

	reservationService := reservation.NewService(reservationRepo)
	reservationService.AddPostCommitHook("line_confirmation", func(ctx context.Context, r *domain.Reservation) error {
		if r.LineUserID == "" {
			return nil
		}
		return notifyService.SendChatConfirmation(ctx, r.LineUserID, r)
	})
	reservationService.AddPostCommitHook("room_cache_invalidation", func(ctx context.Context, r *domain.Reservation) error {
		return roomRepo.Touch(ctx, r.RoomID)
	})
	reservationHandler := reservation.NewHandler(reservationService, notifyService)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo, reservationRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	linebotService := linebot.NewService(userRepo, reservationService, roomRepo, messenger, cfg.LineLIFFID)
	linebotHandler := linebot.NewHandler(linebotService, cfg.AppURL, cfg.LineLIFFID)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/healthz", func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Store unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "OK"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		linebotHandler.RegisterRoutes(v1)

		// reservations accept either channel identity, so auth is optional
		optional := v1.Group("/")
		optional.Use(middleware.OptionalAuth(j))
		{
			reservationHandler.RegisterRoutes(optional)
		}

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtected(protected)
			linebotHandler.RegisterProtected(protected)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
