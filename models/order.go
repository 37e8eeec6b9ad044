package models

import "time"

type OrderStatus string

const (
	OrderStatusNotProcessed   OrderStatus = "Not processed"    // placed, untouched by staff
	OrderStatusProcessing     OrderStatus = "processing"       // being picked
	OrderStatusShipped        OrderStatus = "Shipped"          // left the store
	OrderStatusOutForDelivery OrderStatus = "Out For Delivery" // with the courier
	OrderStatusDelivered      OrderStatus = "Delivered"        // customer received it
	OrderStatusCanceled       OrderStatus = "Canceled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusNotProcessed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

type Order struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	OrderRef              string          `gorm:"uniqueIndex;size:64" json:"orderRef"`
	Products              []OrderProduct  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	Quantities            []OrderQuantity `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"quantities"`
	CustomerID            string          `gorm:"not null;index" json:"customerId"`
	Customer              *User           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status                OrderStatus     `gorm:"type:VARCHAR(20);default:'Not processed'" json:"status"`
	TotalCash             float64         `json:"totalcash"`
	EstimatedDeliveryDate time.Time       `gorm:"not null" json:"estimatedDeliveryDate"`
	MaxDeliveryDuration   int             `gorm:"not null" json:"maxDeliveryDuration"` // minutes
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// OrderProduct is one entry of the order's products list. The list keeps
// duplicates and its original order through Position.
type OrderProduct struct {
	ID        uint     `gorm:"primaryKey" json:"-"`
	OrderID   uint     `gorm:"index" json:"-"`
	Position  int      `json:"-"`
	ProductID uint     `gorm:"index" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type OrderQuantity struct {
	ID        uint     `gorm:"primaryKey" json:"-"`
	OrderID   uint     `gorm:"index" json:"-"`
	ProductID uint     `json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  float64  `json:"quantity"`
}
