package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/avanibrahim/dashnusa/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

// openDB opens the configured database. Postgres is the production driver;
// DB_DRIVER=sqlite switches to a SQLite file (or :memory:) for local dev
// and the integration tests.
func openDB() (*gorm.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	dsn := os.Getenv("DB_DSN")
	if driver == "sqlite" {
		if dsn == "" {
			dsn = "dashnusa.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if dsn == "" {
		log.Fatal("DB_DSN is not set. Set a Postgres DSN in DB_DSN or DB_DRIVER=sqlite.")
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func initDB() {
	var err error
	db, err = openDB()
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Ensure the roles master table exists first and seed it so users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
	}
	seedRoles()

	// Now migrate the rest (users will get FK to roles)
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Category{}); err != nil {
			log.Printf("migration warning (categories): %v", err)
		}
		if err := db.AutoMigrate(&models.Entry{}); err != nil {
			log.Printf("migration warning (entries): %v", err)
		}
		if err := db.AutoMigrate(&models.Loan{}); err != nil {
			log.Printf("migration warning (loans): %v", err)
		}
		if err := db.AutoMigrate(&models.Profile{}); err != nil {
			log.Printf("migration warning (profiles): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Printf("migration warning (refresh_tokens): %v", err)
		}
	}
	seedDB()
}

func seedRoles() {
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		// find administrator role id
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		// Seed admin user
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}
	// Ensure admin has its default category set and a one-to-one profile
	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		log.Printf("failed to find admin user after seeding: %v", err)
		return
	}
	if err := cloneDefaultCategories(db, admin.ID); err != nil {
		log.Printf("failed to seed admin categories: %v", err)
	}
	var pcount int64
	db.Model(&models.Profile{}).Where("user_id = ?", admin.ID).Count(&pcount)
	if pcount == 0 {
		profile := models.Profile{UserID: admin.ID, Name: "Administrator", Email: "admin@example.com"}
		if err := db.Create(&profile).Error; err != nil {
			log.Printf("failed to create profile for admin: %v", err)
		}
	}
}

// cloneDefaultCategories copies the fixed default category set to a user.
// Idempotent: categories the user already has (same name+kind) are skipped,
// so re-running seeding never duplicates rows.
func cloneDefaultCategories(tx *gorm.DB, userID uint) error {
	for _, c := range models.DefaultCategories {
		var cnt int64
		tx.Model(&models.Category{}).
			Where("user_id = ? AND name = ? AND kind = ?", userID, c.Name, c.Kind).
			Count(&cnt)
		if cnt > 0 {
			continue
		}
		cat := models.Category{UserID: userID, Name: c.Name, Kind: c.Kind}
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}
	}
	return nil
}

// purgeRefreshTokens deletes refresh tokens that are expired or revoked.
// Scheduled hourly from main.
func purgeRefreshTokens() {
	res := db.Where("expires_at < ? OR revoked = ?", time.Now(), true).Delete(&models.RefreshToken{})
	if res.Error != nil {
		log.Printf("refresh token purge failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("purged %d stale refresh tokens", res.RowsAffected)
	}
}
