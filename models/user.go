package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"` // subject of the bearer token
	Email     string    `gorm:"index" json:"email"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Address   Address   `gorm:"embedded" json:"address"`
	Orders    []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Address model embedded in User
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
}

// EnsureUser inserts the user row for a token subject if it is not there yet.
// Existing rows are left untouched.
func EnsureUser(db *gorm.DB, u User) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&u).Error
}
