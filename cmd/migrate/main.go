package main

import (
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/GitKaran4723/attendanceModule/internal/config"
	"github.com/GitKaran4723/attendanceModule/internal/database"
	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

// Runs schema migration against the configured database. With -seed-admin
// it also provisions the initial admin account if none exists.
func main() {
	seedAdmin := flag.Bool("seed-admin", false, "create the default admin account if missing")
	adminPassword := flag.String("admin-password", "admin123", "password for the seeded admin account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Running schema migration...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")

	if !*seedAdmin {
		return
	}

	var count int64
	if err := db.Model(&domain.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		log.Fatalf("Failed to check admin account: %v", err)
	}
	if count > 0 {
		log.Println("Admin account already exists, skipping seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := domain.User{
		Username:     "admin",
		Email:        "admin@college.edu",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	log.Println("Seeded admin account 'admin'")
}
