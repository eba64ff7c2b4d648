package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"goboard/config"
	"goboard/pkg/database"
)

const usage = `
goboard - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up       Run GORM migrations
  status   Show database connection status
  seed     Seed the database with the admin account

Flags:
  -admin-user string  Admin username for seeding (default "admin")
  -admin-pass string  Admin password for seeding (default "Admin@123!")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed -admin-user admin
`

func main() {
	adminUser := flag.String("admin-user", "admin", "Admin username for seeding")
	adminPass := flag.String("admin-pass", "Admin@123!", "Admin password for seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	database.Connect(cfg)
	defer database.Close()

	switch command {
	case "up":
		runMigrationsUp()
	case "status":
		showStatus()
	case "seed":
		runSeed(*adminUser, *adminPass)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp() {
	log.Println("Running migrations...")

	if err := database.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}

func showStatus() {
	log.Println("Checking database status...")

	if err := database.Ping(); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	tables := []string{"users", "user_sessions", "boards", "attachments"}
	for _, table := range tables {
		exists, err := database.TableExists(table)
		if err != nil {
			log.Printf("Error checking table %s: %v", table, err)
			continue
		}
		if exists {
			count, _ := database.GetTableCount(table)
			log.Printf("Table %-16s exists (%d rows)", table, count)
		} else {
			log.Printf("Table %-16s does not exist", table)
		}
	}
}

func runSeed(adminUser, adminPass string) {
	log.Println("Seeding database...")

	admin, err := database.SeedAdmin(adminUser, adminPass)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Admin user created/verified: %s (ID: %s)", adminUser, admin.ID)
}
