package main

import (
	"log"

	"github.com/brunapfe/SIGA/app/config"
	"github.com/brunapfe/SIGA/app/database"
)

func main() {
	log.Println("Starting manual migration...")

	cfg := config.Load()
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Manual migration completed successfully!")
}
