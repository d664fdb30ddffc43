package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/careslot/booking-app/cache"
	"github.com/careslot/booking-app/config"
	"github.com/careslot/booking-app/controllers"
	cronjobs "github.com/careslot/booking-app/cron"
	"github.com/careslot/booking-app/db"
	"github.com/careslot/booking-app/routes"
	"github.com/careslot/booking-app/services"
	"github.com/careslot/booking-app/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	log.Println("Database connection established")

	// migrate and seed run out of band, before the API serves traffic.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := db.Migrate(gdb); err != nil {
				log.Fatal("Failed to run migrations: ", err)
			}
			log.Println("Migrations applied successfully")
		case "seed":
			start, err := time.Parse(time.RFC3339, cfg.SeedStart)
			if err != nil {
				log.Fatal("Invalid SEED_START: ", err)
			}
			exclude, err := db.ParseSeedTimes(cfg.SeedBookedTimes)
			if err != nil {
				log.Fatal(err)
			}
			n, err := db.Seed(gdb, db.DefaultSeedConfig(start, cfg.SeedDays, exclude))
			if err != nil {
				log.Fatal("Seeding failed: ", err)
			}
			log.Printf("Created %d slots for next %d days", n, cfg.SeedDays)
		default:
			log.Fatalf("Unknown command %q (want migrate or seed)", os.Args[1])
		}
		return
	}

	mailer := utils.NewMailer(cfg)
	slotCache := cache.New(cfg.RedisAddr)

	authSvc := services.NewAuthService(gdb, cfg.JWTSecret)
	bookingSvc := services.NewBookingService(gdb, slotCache, mailer)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	routes.Setup(app, controllers.NewAuthController(authSvc), controllers.NewBookingController(bookingSvc), cfg.JWTSecret)

	cronjobs.Start(gdb, mailer)

	log.Fatal(app.Listen(":" + cfg.Port))
}
