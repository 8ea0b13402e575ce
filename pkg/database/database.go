package database

import (
	"fmt"
	"log"

	"examen_backend/internal/config"
	"examen_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate creates or updates the schema for every persisted entity,
// including the unique indexes the submission and certificate invariants
// rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Exam{},
		&model.ExamAssignment{},
		&model.Question{},
		&model.ExamResult{},
		&model.Answer{},
		&model.Certificate{},
		&model.Notification{},
	)
}

// Seed inserts the default category set on an empty database.
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count != 0 {
		return
	}

	defaults := []model.Category{
		{Name: "Mathematics", Description: "Arithmetic, algebra and geometry", Color: "#00695c", Icon: "📐", Active: true},
		{Name: "Language", Description: "Reading comprehension and grammar", Color: "#1565c0", Icon: "📖", Active: true},
		{Name: "Science", Description: "Natural and physical sciences", Color: "#2e7d32", Icon: "🔬", Active: true},
		{Name: "Social Studies", Description: "History, geography and civics", Color: "#ef6c00", Icon: "🌎", Active: true},
	}
	for _, c := range defaults {
		db.Create(&c)
	}
}
