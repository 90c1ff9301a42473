package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenDB opens (creating if needed) the sqlite database at path and migrates it.
func OpenDB(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows one writer; serialize through a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&SavedCountry{}, &CountryCount{}, &User{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// Store implements the profile service rules on top of gorm.
type Store struct {
	DB *gorm.DB
}

// SaveCountry records name once. Repeated saves are ignored.
func (s *Store) SaveCountry(name string) error {
	row := SavedCountry{CountryName: name}
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// IncrementCount bumps the counter of name and returns the new total.
func (s *Store) IncrementCount(name string) (int, error) {
	var total int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		row := CountryCount{CountryName: name, Count: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "country_name"}},
			DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("count + 1")}),
		}).Create(&row).Error; err != nil {
			return err
		}
		var current CountryCount
		if err := tx.First(&current, "country_name = ?", name).Error; err != nil {
			return err
		}
		total = current.Count
		return nil
	})
	return total, err
}

// SavedCountries lists saved names in insertion order.
func (s *Store) SavedCountries() ([]SavedCountry, error) {
	var rows []SavedCountry
	if err := s.DB.Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// NewestUsers returns the most recent user, or an empty slice.
func (s *Store) NewestUsers() ([]User, error) {
	var rows []User
	if err := s.DB.Order("id desc").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddUser inserts a profile.
func (s *Store) AddUser(u *User) error {
	return s.DB.Create(u).Error
}
