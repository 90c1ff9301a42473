package server

import "time"

// SavedCountry is one saved country. Names are unique; saving twice is a no-op.
type SavedCountry struct {
	ID          uint   `gorm:"primaryKey"`
	CountryName string `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
}

// CountryCount is the view counter of one country, keyed by common name.
type CountryCount struct {
	CountryName string `gorm:"primaryKey"`
	Count       int    `gorm:"not null;default:0"`
}

// User is a submitted profile. The newest user has the highest ID.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	CountryName string `gorm:"not null"`
	Email       string `gorm:"not null"`
	Bio         string
	CreatedAt   time.Time
}
