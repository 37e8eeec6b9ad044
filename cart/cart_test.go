package cart

import (
	"testing"
	"time"

	"github.com/fathy2028/shopeklopek/delivery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesSameProduct(t *testing.T) {
	c := New(25)
	require.NoError(t, c.Add(Line{ProductID: 1, Price: 10, Quantity: 1}))
	require.NoError(t, c.Add(Line{ProductID: 2, Price: 5, Quantity: 0.5}))
	require.NoError(t, c.Add(Line{ProductID: 1, Price: 10, Quantity: 1.25}))

	require.Equal(t, 2, c.Len())
	assert.Equal(t, uint(1), c.Lines[0].ProductID)
	assert.Equal(t, 2.25, c.Lines[0].Quantity)
	assert.Equal(t, 0.5, c.Lines[1].Quantity)
}

func TestAddRejectsNonPositive(t *testing.T) {
	c := New(25)
	assert.ErrorIs(t, c.Add(Line{ProductID: 1, Price: 10, Quantity: 0}), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(Line{ProductID: 1, Price: 10, Quantity: -1}), ErrInvalidQuantity)
	assert.Zero(t, c.Len())
}

func TestTotals(t *testing.T) {
	c := New(25)
	require.NoError(t, c.Add(Line{ProductID: 1, Price: 10, Quantity: 2}))
	require.NoError(t, c.Add(Line{ProductID: 2, Price: 5, Quantity: 1}))

	assert.Equal(t, 25.0, c.Subtotal())
	assert.Equal(t, 25.0, c.Fee())
	assert.Equal(t, 50.0, c.Total())
}

func TestTotalsRoundToCents(t *testing.T) {
	c := New(25)
	require.NoError(t, c.Add(Line{ProductID: 1, Price: 19.99, Quantity: 0.75}))
	assert.Equal(t, 14.99, c.Subtotal())
	assert.Equal(t, 39.99, c.Total())
	assert.Equal(t, 14.99, c.Lines[0].LineTotal())
}

func TestEmptyCartIsFree(t *testing.T) {
	c := New(25)
	assert.Zero(t, c.Subtotal())
	assert.Zero(t, c.Fee())
	assert.Zero(t, c.Total())
}

func TestSetQuantityAndRemove(t *testing.T) {
	c := New(25)
	require.NoError(t, c.Add(Line{ProductID: 1, Price: 10, Quantity: 1}))
	require.NoError(t, c.Add(Line{ProductID: 2, Price: 4, Quantity: 1}))

	assert.True(t, c.SetQuantity(1, 3))
	assert.Equal(t, 3.0, c.Lines[0].Quantity)

	assert.True(t, c.SetQuantity(1, 0))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, uint(2), c.Lines[0].ProductID)

	assert.False(t, c.Remove(9))
	assert.True(t, c.Remove(2))
	assert.Zero(t, c.Len())
}

func TestDeliveryUsesLongestCategory(t *testing.T) {
	c := New(25)
	require.NoError(t, c.Add(Line{ProductID: 1, Price: 1, Quantity: 1, CategoryName: "Bakery", DeliveryDuration: 90}))
	require.NoError(t, c.Add(Line{ProductID: 2, Price: 1, Quantity: 1, CategoryName: "Butcher", DeliveryDuration: 240}))

	now := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	est := c.Delivery(now, delivery.English)
	assert.Equal(t, 240, est.MaxDeliveryDuration)
	assert.Equal(t, "4 hours", est.MaxDeliveryDurationText)
	assert.Equal(t, now.Add(4*time.Hour), est.EstimatedDeliveryDate)
	assert.Len(t, est.Categories, 2)
}

func TestOrderPayload(t *testing.T) {
	c := New(25)
	require.NoError(t, c.Add(Line{ProductID: 7, Price: 1, Quantity: 2}))
	require.NoError(t, c.Add(Line{ProductID: 3, Price: 1, Quantity: 0.5}))

	products, quantities := c.OrderPayload()
	assert.Equal(t, []uint{7, 3}, products)
	assert.Equal(t, []Quantity{{7, 2}, {3, 0.5}}, quantities)
}
