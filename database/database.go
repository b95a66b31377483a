package database

import (
	"fmt"
	"log"
	"os"

	"fundadmin/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		// duplicate-key errors must surface as gorm.ErrDuplicatedKey so the
		// allocation builder can report a conflict instead of a 500
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	DB = db
}

func Migrate() {
	if err := DB.AutoMigrate(
		&models.Structure{},
		&models.Investor{},
		&models.StructureInvestor{},
		&models.CapitalCall{},
		&models.Allocation{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}
