package app

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/campuskit/portal-api/api"
	"github.com/campuskit/portal-api/config"
	"github.com/campuskit/portal-api/database"
	"github.com/campuskit/portal-api/router"
	"github.com/campuskit/portal-api/services/cron"
	"github.com/campuskit/portal-api/services/storage"
)

// SetupAndRunServer loads config, opens the stores, runs migrations and
// seeds, starts background jobs, and serves until shutdown.
func SetupAndRunServer() error {
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Println("Check whether Postgres is running and reachable")
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Failed to run database migrations")
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get GORM DB instance")
	}

	if err := database.RunSeeds(db); err != nil {
		log.Printf("Warning: seeding failed: %v", err)
	}

	// Raw store powers the admin dashboard aggregates.
	rawStore, err := database.Start()
	if err != nil {
		log.Printf("Warning: raw store unavailable, dashboard disabled: %v", err)
		rawStore = nil
	}

	// Object storage for resources, schedules, and ledgers.
	var objectStore *storage.ObjectStore
	if getEnv.STORAGE_BUCKET != "" {
		objectStore, err = storage.New(storage.Config{
			AccessKey: getEnv.STORAGE_ACCESS_KEY,
			SecretKey: getEnv.STORAGE_SECRET_KEY,
			Bucket:    getEnv.STORAGE_BUCKET,
			Region:    getEnv.STORAGE_REGION,
			Endpoint:  getEnv.STORAGE_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: object storage unavailable: %v", err)
			objectStore = nil
		}
	}

	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager = cron.NewCronManager(db)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if rawStore != nil {
			rawStore.Close()
		}
		store.Close()
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	router.SetupRoutes(app, store, rawStore, objectStore)

	return server.Run()
}
