package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/templui/scoutbot/internal/db"
	"github.com/templui/scoutbot/internal/logger"
)

// Usage: go run ./cmd/migrate [up|down|status]
// Reads DB_DRIVER and DB_CONNECTION like the server does.
func main() {
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	logger.Init(true, "")
	_ = godotenv.Load()

	driver := envString("DB_DRIVER", "sqlite")
	connection := envString("DB_CONNECTION", "./data/scoutbot.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")

	database, err := db.Init(driver, connection)
	if err != nil {
		slog.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	switch command {
	case "up":
		err = db.RunMigrations(database.DB, driver)
	case "down":
		err = db.MigrateDown(database.DB, driver)
	case "status":
		err = db.MigrationStatus(database.DB, driver)
	default:
		slog.Error("unknown command", "command", command, "hint", "use up, down or status")
		os.Exit(2)
	}
	if err != nil {
		slog.Error("migration failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
