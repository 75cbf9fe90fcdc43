package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/coachchris/review-api/api"
	"github.com/coachchris/review-api/config"
	"github.com/coachchris/review-api/database"
)

func main() {
	// .env is optional; deployed environments inject real variables.
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	c := config.New()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		config.GetString(c, "DB_USER", "root"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_HOST", "127.0.0.1"),
		config.GetString(c, "DB_PORT", config.DefaultDBPort),
		config.GetString(c, "DB_NAME", "coachdb"),
	)

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("acquiring connection pool")
	}
	// Same bound the previous deployment used on its pool; excess
	// requests queue for a connection instead of being rejected.
	sqlDB.SetMaxOpenConns(config.GetInt(c, "DB_MAX_OPEN_CONNS", config.DefaultMaxOpenConns))
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// The public listing and stats are read-heavy; route them to a
	// replica when one is configured.
	if replicaDSN := config.GetString(c, "DB_REPLICA_DSN", ""); replicaDSN != "" {
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{mysql.Open(replicaDSN)},
		})); err != nil {
			log.Fatal().Err(err).Msg("registering read replica")
		}
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrating schema")
	}

	store := database.New(db, database.Config{
		CoachName: config.GetString(c, "COACH_NAME", config.DefaultCoachName),
	})

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(store)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
