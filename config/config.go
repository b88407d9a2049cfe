package config

import (
	"log"
	"os"

	"github.com/hermione06/cafeteria-management-system/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "cafeteria_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads a .env file if one exists and refreshes the JWT secret.
// A missing .env is fine — deployments set plain environment variables.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "cafeteria_super_secret_2024"))
}

func InitDB() {
	// Prices serialize as JSON numbers, matching what the browser expects
	decimal.MarshalJSONWithoutQuotes = true

	path := getEnv("DATABASE_PATH", "cafeteria.db")

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Announcement{},
		&models.Rating{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seedAdmin(DB)

	log.Println("Database connected and migrated successfully")
}

// seedAdmin creates the bootstrap admin account on first start. Registration
// only mints plain users, so without this seed nobody could reach the admin
// endpoints to promote anyone.
func seedAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		log.Fatal("Failed to check for admin account:", err)
	}
	if count > 0 {
		return
	}

	password := getEnv("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := models.User{
		Username:     getEnv("ADMIN_USERNAME", "admin"),
		Email:        getEnv("ADMIN_EMAIL", "admin@cafeteria.local"),
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}
	log.Println("Seeded default admin account; change ADMIN_PASSWORD in production")
}
