// Package cart consolidates product additions into one line per product and
// prices the result.
package cart

import (
	"errors"
	"math"
	"time"

	"github.com/fathy2028/shopeklopek/delivery"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

type Line struct {
	ProductID        uint    `json:"productId"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Quantity         float64 `json:"quantity"`
	CategoryName     string  `json:"categoryName,omitempty"`
	DeliveryDuration int     `json:"deliveryDuration,omitempty"` // category window, minutes
}

// LineTotal is price × quantity rounded to cents.
func (l Line) LineTotal() float64 {
	return round2(l.Price * l.Quantity)
}

type Cart struct {
	Lines       []Line
	DeliveryFee float64
}

func New(deliveryFee float64) *Cart {
	return &Cart{DeliveryFee: deliveryFee}
}

func (c *Cart) index(productID uint) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges l into the cart. A product already present has its quantity
// increased and its price/category refreshed from l.
func (c *Cart) Add(l Line) error {
	if l.Quantity <= 0 || math.IsNaN(l.Quantity) || math.IsInf(l.Quantity, 0) {
		return ErrInvalidQuantity
	}
	if i := c.index(l.ProductID); i >= 0 {
		l.Quantity += c.Lines[i].Quantity
		c.Lines[i] = l
		return nil
	}
	c.Lines = append(c.Lines, l)
	return nil
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
// It reports whether the product was in the cart.
func (c *Cart) SetQuantity(productID uint, quantity float64) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return true
	}
	c.Lines[i].Quantity = quantity
	return true
}

func (c *Cart) Remove(productID uint) bool {
	return c.SetQuantity(productID, 0)
}

func (c *Cart) Len() int { return len(c.Lines) }

func (c *Cart) Subtotal() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Price * l.Quantity
	}
	return round2(total)
}

// Fee is the flat delivery fee, charged only on a non-empty cart.
func (c *Cart) Fee() float64 {
	if len(c.Lines) == 0 {
		return 0
	}
	return c.DeliveryFee
}

func (c *Cart) Total() float64 {
	if len(c.Lines) == 0 {
		return 0
	}
	return round2(c.Subtotal() + c.DeliveryFee)
}

// Delivery projects the delivery window for the cart's categories.
func (c *Cart) Delivery(now time.Time, lang delivery.Lang) delivery.Estimate {
	var est delivery.Estimator
	for _, l := range c.Lines {
		est.Add(l.CategoryName, l.DeliveryDuration)
	}
	return est.Estimate(now, lang)
}

// Quantity is one entry of an order's quantities payload.
type Quantity struct {
	ProductID uint    `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// OrderPayload returns the products and quantities lists an order is placed with.
func (c *Cart) OrderPayload() ([]uint, []Quantity) {
	products := make([]uint, 0, len(c.Lines))
	quantities := make([]Quantity, 0, len(c.Lines))
	for _, l := range c.Lines {
		products = append(products, l.ProductID)
		quantities = append(quantities, Quantity{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return products, quantities
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
