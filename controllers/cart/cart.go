package cartControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fathy2028/shopeklopek/cart"
	"github.com/fathy2028/shopeklopek/config"
	orderControllers "github.com/fathy2028/shopeklopek/controllers/order"
	"github.com/fathy2028/shopeklopek/delivery"
	"github.com/fathy2028/shopeklopek/middleware"
	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrCartEmpty = errors.New("cart is empty")

type CartItemInput struct {
	ProductID uint    `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity"`
}

type SetQuantityInput struct {
	Quantity float64 `json:"quantity"`
}

// userCart returns the user's cart row, creating it on first use.
func userCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var c models.Cart
	if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// loadCart reads the stored items and rebuilds the aggregated cart from them.
// Items whose product was deleted are skipped.
func loadCart(db *gorm.DB, cartID uint, fee float64) (*cart.Cart, error) {
	var items []models.CartItem
	if err := db.
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Select(models.ProductListColumns) }).
		Preload("Product.Category", func(db *gorm.DB) *gorm.DB { return db.Select(models.CategoryListColumns) }).
		Where("cart_id = ?", cartID).
		Order("added_at").
		Find(&items).Error; err != nil {
		return nil, err
	}

	agg := cart.New(fee)
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		// rows with a non-positive quantity are left out
		_ = agg.Add(lineFor(item.Product, item.Quantity))
	}
	return agg, nil
}

func lineFor(p *models.Product, quantity float64) cart.Line {
	line := cart.Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
	}
	if p.Category != nil {
		line.CategoryName = p.Category.Name
		line.DeliveryDuration = p.Category.DeliveryDuration
	}
	return line
}

func cartResponse(c *gin.Context, agg *cart.Cart) gin.H {
	lang := delivery.ParseLang(c.Query("lang"), c.GetHeader("Accept-Language"))
	lines := agg.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return gin.H{
		"success":     true,
		"items":       lines,
		"count":       agg.Len(),
		"subtotal":    agg.Subtotal(),
		"deliveryFee": agg.Fee(),
		"total":       agg.Total(),
		"delivery":    agg.Delivery(time.Now(), lang),
	}
}

func respondWithCart(c *gin.Context, db *gorm.DB, store config.StoreConfig, cartID uint, status int) {
	agg, err := loadCart(db, cartID, store.DeliveryFee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart", "error": err.Error()})
		return
	}
	c.JSON(status, cartResponse(c, agg))
}

// GET /cart
func GetCart(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCartRow, err := userCart(db, middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart", "error": err.Error()})
			return
		}
		respondWithCart(c, db, store, userCartRow.ID, http.StatusOK)
	}
}

// POST /cart/add
func AddCartItem(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": cart.ErrInvalidQuantity.Error()})
			return
		}

		var product models.Product
		if err := db.Select(models.ProductListColumns).First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to validate product", "error": err.Error()})
			return
		}

		var cartID uint
		err := db.Transaction(func(tx *gorm.DB) error {
			row, err := userCart(tx, middleware.UserID(c))
			if err != nil {
				return err
			}
			cartID = row.ID

			var item models.CartItem
			err = tx.Where("cart_id = ? AND product_id = ?", row.ID, product.ID).First(&item).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				item = models.CartItem{CartID: row.ID, ProductID: product.ID, Quantity: input.Quantity, AddedAt: time.Now()}
				return tx.Create(&item).Error
			case err != nil:
				return err
			}

			// merge through the aggregator so the stored row matches what the cart shows
			agg := cart.New(store.DeliveryFee)
			if err := agg.Add(lineFor(&product, item.Quantity)); err != nil {
				return err
			}
			if err := agg.Add(lineFor(&product, input.Quantity)); err != nil {
				return err
			}
			return tx.Model(&item).Update("quantity", agg.Lines[0].Quantity).Error
		})
		if err != nil {
			log.Printf("❌ Failed to add product %d to cart: %v", input.ProductID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add item to cart", "error": err.Error()})
			return
		}

		respondWithCart(c, db, store, cartID, http.StatusOK)
	}
}

// PUT /cart/item/:productId
func SetCartItemQuantity(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
			return
		}
		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		row, err := userCart(db, middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart", "error": err.Error()})
			return
		}

		query := db.Where("cart_id = ? AND product_id = ?", row.ID, productID)
		var result *gorm.DB
		if input.Quantity <= 0 {
			result = query.Delete(&models.CartItem{})
		} else {
			result = query.Model(&models.CartItem{}).Update("quantity", input.Quantity)
		}
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart item", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
			return
		}

		respondWithCart(c, db, store, row.ID, http.StatusOK)
	}
}

// DELETE /cart/item/:productId
func DeleteCartItem(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := userCart(db, middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart", "error": err.Error()})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", row.ID, c.Param("productId")).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete item", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
			return
		}

		respondWithCart(c, db, store, row.ID, http.StatusOK)
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB, store config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := userCart(db, middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart", "error": err.Error()})
			return
		}
		if err := db.Where("cart_id = ?", row.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart", "error": err.Error()})
			return
		}
		respondWithCart(c, db, store, row.ID, http.StatusOK)
	}
}

// Checkout places an order for everything in the user's cart, priced with
// the delivery fee, and empties the cart.
func Checkout(db *gorm.DB, customer models.User, store config.StoreConfig) (*models.Order, error) {
	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		row, err := userCart(tx, customer.ID)
		if err != nil {
			return err
		}
		agg, err := loadCart(tx, row.ID, store.DeliveryFee)
		if err != nil {
			return err
		}
		if agg.Len() == 0 {
			return ErrCartEmpty
		}

		products, quantities := agg.OrderPayload()
		in := orderControllers.NewOrder{Products: products, TotalCash: agg.Total()}
		for _, q := range quantities {
			in.Quantities = append(in.Quantities, models.OrderQuantity{ProductID: q.ProductID, Quantity: q.Quantity})
		}

		order, err = orderControllers.CreateOrder(tx, customer, in)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", row.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// POST /cart/checkout
func CheckoutHandler(db *gorm.DB, store config.StoreConfig, hub *orderControllers.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := Checkout(db, middleware.CurrentUser(c), store)
		if err != nil {
			if errors.Is(err, ErrCartEmpty) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
				return
			}
			log.Printf("❌ Checkout failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order", "error": err.Error()})
			return
		}

		log.Printf("✅ Checkout created order %s", order.OrderRef)
		hub.Broadcast(orderControllers.EventOrderCreated, order)
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order created successfully", "order": order})
	}
}
