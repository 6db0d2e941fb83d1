package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"HomeSked/CronJobs"
	"HomeSked/FiberConfig"
	"HomeSked/Models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/homesked.db"
	}

	db, err := Models.Connect(dbPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	janitor := CronJobs.NewLogJanitor("logs", 30*24*time.Hour)
	if err := janitor.Start(); err != nil {
		log.Printf("Failed to start log cleanup scheduler: %v\n", err)
	}
	defer janitor.Stop()

	FiberConfig.FiberConfig(db)
}
