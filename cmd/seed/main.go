package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"roomreserve/internal/database"
	"roomreserve/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "roomreserve.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&domain.Reservation{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// ================== ROOMS ==================
	// The room set is fixed; re-running the seed refreshes names/capacities
	// without touching reservations.
	log.Println("Seeding rooms...")
	rooms := []domain.Room{
		{ID: 1, Name: "AIS 5G GARAGE", Capacity: 10, ImageURL: "https://www.eng.chula.ac.th/wp-content/uploads/2022/08/05-2-1024x683.jpg"},
		{ID: 2, Name: "Room 601", Capacity: 40, ImageURL: "https://www.eng.chula.ac.th/wp-content/uploads/2020/10/4-1024x769.jpg"},
		{ID: 3, Name: "Room 602", Capacity: 50, ImageURL: "https://www.eng.chula.ac.th/wp-content/uploads/2024/12/13-6-768x512.jpg"},
	}
	for _, room := range rooms {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&room).Error; err != nil {
			log.Fatal("Seeding room failed:", err)
		}
	}

	// ================== DEMO USER ==================
	log.Println("Creating demo user...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	email := "demo@roomreserve.local"
	demo := domain.User{
		Email:        &email,
		PasswordHash: string(hash),
		Name:         "Demo User",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&demo).Error; err != nil {
		log.Fatal("Seeding demo user failed:", err)
	}

	log.Println("Seed complete")
}
