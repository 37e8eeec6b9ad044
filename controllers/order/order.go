package orderControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fathy2028/shopeklopek/delivery"
	"github.com/fathy2028/shopeklopek/middleware"
	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidQuantities = errors.New("Invalid quantity structure. Each quantity must have productId and quantity >= 0")
	ErrNoProducts        = errors.New("Order must contain at least one product")
	ErrInvalidStatus     = errors.New("invalid order status")
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	Products   []uint          `json:"products"`
	Quantities json.RawMessage `json:"quantities"`
	TotalCash  float64         `json:"totalcash"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// NewOrder is a validated order payload.
type NewOrder struct {
	Products   []uint
	Quantities []models.OrderQuantity
	TotalCash  float64
}

// -------- Helpers --------

// ParseOrderStatus maps a status in any letter case to its stored form.
func ParseOrderStatus(status string) (models.OrderStatus, error) {
	for _, s := range models.OrderStatuses {
		if strings.EqualFold(strings.TrimSpace(status), string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// parseID accepts a JSON number or a numeric string.
func parseID(raw json.RawMessage) (uint, bool) {
	var n uint
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, n > 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	return uint(v), err == nil && v > 0
}

// ParseQuantities validates the raw quantities payload: a list of
// {productId, quantity} entries with a numeric quantity >= 0.
func ParseQuantities(raw json.RawMessage) ([]models.OrderQuantity, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrInvalidQuantities
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, ErrInvalidQuantities
	}

	quantities := make([]models.OrderQuantity, 0, len(entries))
	for _, e := range entries {
		productID, ok := parseID(e["productId"])
		if !ok {
			return nil, ErrInvalidQuantities
		}
		rawQty := e["quantity"]
		if len(rawQty) == 0 || string(rawQty) == "null" {
			return nil, ErrInvalidQuantities
		}
		var q float64
		if err := json.Unmarshal(rawQty, &q); err != nil || q < 0 {
			return nil, ErrInvalidQuantities
		}
		quantities = append(quantities, models.OrderQuantity{ProductID: productID, Quantity: q})
	}
	return quantities, nil
}

// ParseCreateOrder turns a request body into a NewOrder.
func ParseCreateOrder(req CreateOrderRequest) (NewOrder, error) {
	quantities, err := ParseQuantities(req.Quantities)
	if err != nil {
		return NewOrder{}, err
	}
	if len(req.Products) == 0 {
		return NewOrder{}, ErrNoProducts
	}
	return NewOrder{Products: req.Products, Quantities: quantities, TotalCash: req.TotalCash}, nil
}

func productColumns(db *gorm.DB) *gorm.DB {
	return db.Select(models.ProductListColumns)
}

func categoryColumns(db *gorm.DB) *gorm.DB {
	return db.Select(models.CategoryListColumns)
}

// withOrderDetails preloads products and quantities with their categories.
func withOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Products.Product", productColumns).
		Preload("Products.Product.Category", categoryColumns).
		Preload("Quantities", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Quantities.Product", productColumns).
		Preload("Quantities.Product.Category", categoryColumns)
}

// -------- Core Logic --------

// CreateOrder stores a new order for customer. The delivery window is the
// longest one among the ordered products' categories.
func CreateOrder(db *gorm.DB, customer models.User, in NewOrder) (*models.Order, error) {
	if len(in.Products) == 0 {
		return nil, ErrNoProducts
	}

	var created models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := models.EnsureUser(tx, customer); err != nil {
			return fmt.Errorf("ensure customer: %w", err)
		}

		// ids that no longer exist simply do not show up here
		var products []models.Product
		if err := tx.Select("id", "category_id").
			Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Select("id", "delivery_duration") }).
			Where("id IN ?", in.Products).
			Find(&products).Error; err != nil {
			return fmt.Errorf("load products: %w", err)
		}

		durations := make([]int, 0, len(products))
		for _, p := range products {
			if p.Category != nil {
				durations = append(durations, p.Category.DeliveryDuration)
			}
		}
		maxDuration := delivery.Longest(durations...)

		now := time.Now()
		order := models.Order{
			OrderRef:              generateOrderRef(),
			CustomerID:            customer.ID,
			Status:                models.OrderStatusNotProcessed,
			TotalCash:             in.TotalCash,
			MaxDeliveryDuration:   maxDuration,
			EstimatedDeliveryDate: delivery.EstimatedDate(now, maxDuration),
			CreatedAt:             now,
		}
		for i, id := range in.Products {
			order.Products = append(order.Products, models.OrderProduct{Position: i, ProductID: id})
		}
		for _, q := range in.Quantities {
			order.Quantities = append(order.Quantities, models.OrderQuantity{ProductID: q.ProductID, Quantity: q.Quantity})
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return withOrderDetails(tx).First(&created, order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateOrderStatus moves an order to a new status. Entering Delivered takes
// each product's stock down by the number of times it appears in the order.
func UpdateOrderStatus(db *gorm.DB, orderID string, status string) (*models.Order, error) {
	newStatus, err := ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var updated models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Products").First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		previous := order.Status

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		if newStatus == models.OrderStatusDelivered && previous != models.OrderStatusDelivered {
			counts := make(map[uint]int)
			ids := make([]uint, 0, len(order.Products))
			for _, p := range order.Products {
				if counts[p.ProductID] == 0 {
					ids = append(ids, p.ProductID)
				}
				counts[p.ProductID]++
			}
			// fixed order keeps concurrent deliveries from deadlocking
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

			for _, id := range ids {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", id).
					UpdateColumn("quantity", gorm.Expr("quantity - ?", counts[id])).Error; err != nil {
					return fmt.Errorf("decrement stock of product %d: %w", id, err)
				}
			}
		}

		return withOrderDetails(tx).First(&updated, order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOrder removes an order and its lines. A non-empty customerID limits
// the delete to that customer's orders.
func DeleteOrder(db *gorm.DB, orderID string, customerID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		query := tx.Select("id")
		if customerID != "" {
			query = query.Where("customer_id = ?", customerID)
		}
		var order models.Order
		if err := query.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderQuantity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// orderView adds the localized delivery window to an order listing.
type orderView struct {
	models.Order
	MaxDeliveryDurationText string            `json:"maxDeliveryDurationText"`
	DeliveryStatus          delivery.Progress `json:"deliveryStatus"`
	DeliveryStatusText      string            `json:"deliveryStatusText"`
}

func viewOrders(orders []models.Order, lang delivery.Lang, now time.Time) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		progress := delivery.ProgressOf(string(o.Status), o.EstimatedDeliveryDate, now)
		views = append(views, orderView{
			Order:                   o,
			MaxDeliveryDurationText: delivery.FormatDuration(o.MaxDeliveryDuration, lang),
			DeliveryStatus:          progress,
			DeliveryStatusText:      progress.Label(lang),
		})
	}
	return views
}

// validOrderID keeps non-numeric ids away from the integer column.
func validOrderID(id string) bool {
	_, err := strconv.ParseUint(id, 10, 64)
	return err == nil
}

func requestLang(c *gin.Context) delivery.Lang {
	return delivery.ParseLang(c.Query("lang"), c.GetHeader("Accept-Language"))
}

// -------- Handlers --------

// CreateOrderHandler places an order for the signed-in customer.
func CreateOrderHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order payload", "error": err.Error()})
			return
		}
		in, err := ParseCreateOrder(req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		order, err := CreateOrder(db, middleware.CurrentUser(c), in)
		if err != nil {
			log.Printf("❌ Failed to create order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order", "error": err.Error()})
			return
		}

		log.Printf("✅ Order %s created, delivery in %d minutes", order.OrderRef, order.MaxDeliveryDuration)
		hub.Broadcast(EventOrderCreated, order)
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order created successfully", "order": order})
	}
}

func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := withOrderDetails(db).
			Where("customer_id = ?", middleware.UserID(c)).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error in fetching orders", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": viewOrders(orders, requestLang(c), time.Now())})
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := withOrderDetails(db).
			Preload("Customer").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get orders", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": viewOrders(orders, requestLang(c), time.Now())})
	}
}

// Update order status
func UpdateOrderStatusHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderId")
		if !validOrderID(orderID) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required", "error": err.Error()})
			return
		}

		order, err := UpdateOrderStatus(db, orderID, req.Status)
		switch {
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		case err != nil:
			log.Printf("❌ Failed to update status of order %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order status", "error": err.Error()})
			return
		}

		hub.Broadcast(EventOrderStatusUpdated, order)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully", "order": order})
	}
}

// DeleteUserOrderHandler lets a customer delete one of their own orders.
func DeleteUserOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return deleteOrderHandler(db, middleware.UserID)
}

// DeleteOrderHandler lets an admin delete any order.
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return deleteOrderHandler(db, func(*gin.Context) string { return "" })
}

func deleteOrderHandler(db *gorm.DB, owner func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderId")
		if !validOrderID(orderID) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		if err := DeleteOrder(db, orderID, owner(c)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			log.Printf("❌ Failed to delete order %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete order", "error": err.Error()})
			return
		}
		log.Printf("🗑️ Order %s deleted", orderID)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
	}
}
