package models

import (
	"time"

	"github.com/fathy2028/shopeklopek/delivery"
	"gorm.io/gorm"
)

type Category struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"unique;not null" json:"name"`
	Slug             string    `gorm:"index" json:"slug"`
	DeliveryDuration int       `gorm:"not null;default:1440" json:"deliveryDuration"` // minutes
	Photo            []byte    `json:"-"`
	PhotoContentType string    `json:"-"`
	Products         []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AfterFind backfills rows created before delivery durations existed.
func (c *Category) AfterFind(tx *gorm.DB) error {
	if c.DeliveryDuration <= 0 {
		c.DeliveryDuration = delivery.DefaultDuration
	}
	return nil
}

// CategoryListColumns leaves the photo blob out of listing queries.
var CategoryListColumns = []string{"id", "name", "slug", "delivery_duration", "created_at", "updated_at"}
