package models

import (
	"time"
)

type Product struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Slug             string    `gorm:"index" json:"slug"`
	Description      string    `json:"description"`
	Price            float64   `gorm:"not null" json:"price"`
	Quantity         int       `json:"quantity"` // stock on hand
	CategoryID       uint      `gorm:"index;not null" json:"categoryId"`
	Category         *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Shipping         bool      `json:"shipping"`
	Photo            []byte    `json:"-"`
	PhotoContentType string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ProductListColumns leaves the photo blob out of listing queries.
var ProductListColumns = []string{
	"id", "name", "slug", "description", "price", "quantity",
	"category_id", "shipping", "created_at", "updated_at",
}
