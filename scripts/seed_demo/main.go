// Seeds a demo user with a few months of entries and a couple of loans so
// the dashboard has something to draw during frontend work.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/avanibrahim/dashnusa/models"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	var user models.User
	if err := db.Where("username = ?", "demo").First(&user).Error; err != nil {
		hpw, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
		user = models.User{Username: "demo", HashedPassword: hpw}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("create demo user: %v", err)
		}
		for _, c := range models.DefaultCategories {
			db.Create(&models.Category{UserID: user.ID, Name: c.Name, Kind: c.Kind})
		}
	}

	catID := func(name, kind string) *uint {
		var cat models.Category
		if err := db.Where("user_id = ? AND name = ? AND kind = ?", user.ID, name, kind).First(&cat).Error; err != nil {
			return nil
		}
		id := cat.ID
		return &id
	}

	day := func(monthsAgo, dd int) time.Time {
		t := time.Now().UTC().AddDate(0, -monthsAgo, 0)
		return time.Date(t.Year(), t.Month(), dd, 0, 0, 0, 0, time.UTC)
	}
	amt := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

	entries := []models.Entry{
		{UserID: user.ID, Kind: models.KindIncome, Amount: amt(5000000), CategoryID: catID("Gaji", models.KindIncome), Note: "gaji bulanan", Date: day(2, 1)},
		{UserID: user.ID, Kind: models.KindExpense, Amount: amt(750000), CategoryID: catID("Makanan", models.KindExpense), Date: day(2, 8)},
		{UserID: user.ID, Kind: models.KindExpense, Amount: amt(300000), CategoryID: catID("Transportasi", models.KindExpense), Date: day(2, 15)},
		{UserID: user.ID, Kind: models.KindIncome, Amount: amt(5000000), CategoryID: catID("Gaji", models.KindIncome), Note: "gaji bulanan", Date: day(1, 1)},
		{UserID: user.ID, Kind: models.KindExpense, Amount: amt(1200000), CategoryID: catID("Belanja", models.KindExpense), Note: "belanja bulanan", Date: day(1, 5)},
		{UserID: user.ID, Kind: models.KindExpense, Amount: amt(450000), CategoryID: catID("Tagihan", models.KindExpense), Note: "listrik & air", Date: day(1, 10)},
		{UserID: user.ID, Kind: models.KindIncome, Amount: amt(5250000), CategoryID: catID("Gaji", models.KindIncome), Date: day(0, 1)},
		{UserID: user.ID, Kind: models.KindExpense, Amount: amt(200000), CategoryID: catID("Hiburan", models.KindExpense), Date: day(0, 12)},
		{UserID: user.ID, Kind: models.KindExpense, Amount: amt(95000), Note: "tanpa kategori", Date: day(0, 14)},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			log.Printf("warning: seed entry %d: %v", i, err)
		}
	}

	loans := []models.Loan{
		{UserID: user.ID, Kind: models.LoanHutang, Amount: amt(500000), Note: "pinjam ke Budi", Date: day(1, 20)},
		{UserID: user.ID, Kind: models.LoanPiutang, Amount: amt(250000), Note: "dipinjam Sari", Date: day(0, 3)},
	}
	for i := range loans {
		if err := db.Create(&loans[i]).Error; err != nil {
			log.Printf("warning: seed loan %d: %v", i, err)
		}
	}

	fmt.Printf("seeded demo user id=%d (password demo123)\n", user.ID)
}
