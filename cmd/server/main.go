package main // Entry point package

import (
    "context"
    "database/sql"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/quai-antique/restaurant-reservation/internal/config"
    "github.com/quai-antique/restaurant-reservation/internal/database"
    "github.com/quai-antique/restaurant-reservation/internal/handler"
    "github.com/quai-antique/restaurant-reservation/internal/middleware"
    "github.com/quai-antique/restaurant-reservation/internal/model"
    "github.com/quai-antique/restaurant-reservation/internal/queue"
    "github.com/quai-antique/restaurant-reservation/internal/repository"
    "github.com/quai-antique/restaurant-reservation/internal/router"
)

func main() {
    _ = godotenv.Load() // .env is optional; real env wins

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := database.Migrate(ctx, db); err != nil {
        cancel()
        log.Fatalf("migrate: %v", err)
    }
    cancel()

    accountRepo := repository.NewAccountRepo(db)
    profileRepo := repository.NewProfileRepo(db)
    tokenRepo := repository.NewTokenRepo(db)
    serviceRepo := repository.NewServiceRepo(db)
    settingsRepo := repository.NewSettingsRepo(db)
    reservationRepo := repository.NewReservationRepo(db)
    menuRepo := repository.NewMenuRepo(db)
    galleryRepo := repository.NewGalleryRepo(db)

    if err := seedAdmin(cfg, accountRepo); err != nil {
        log.Fatalf("seed admin: %v", err)
    }

    authHandler := handler.NewAuthHandler(cfg, accountRepo, profileRepo, tokenRepo)
    reservationHandler := handler.NewReservationHandler(reservationRepo, serviceRepo, settingsRepo, profileRepo)
    settingsHandler := handler.NewSettingsHandler(settingsRepo, serviceRepo)
    menuHandler := handler.NewMenuHandler(menuRepo)
    galleryHandler := handler.NewGalleryHandler(galleryRepo)

    rdb := config.NewRedisClient()
    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    e := echo.New()
    e.HideBanner = true
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authHandler, cfg.JWTSecret)
    router.RegisterPublic(e, reservationHandler, settingsHandler, menuHandler, galleryHandler, cache)
    router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)
    router.RegisterAdmin(e, reservationHandler, settingsHandler, menuHandler, galleryHandler, cfg.JWTSecret)

    // Background consumer: logs confirmed reservations from the broker.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}

// seedAdmin creates the administrator account named in configuration when
// it does not exist yet.  Admins are never self-registered.
func seedAdmin(cfg config.Config, accounts *repository.AccountRepo) error {
    if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
        return nil
    }
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if _, err := accounts.GetByEmail(ctx, cfg.AdminEmail); err == nil {
        return nil
    } else if err != sql.ErrNoRows {
        return err
    }
    _, err := accounts.Create(ctx, cfg.AdminEmail, cfg.AdminPassword, model.AccessAdmin, cfg.BcryptCost)
    if err == repository.ErrEmailExists {
        return nil
    }
    return err
}
