package orderControllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", hub.ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(EventOrderCreated, &models.Order{ID: 7, OrderRef: "ref-7", Status: models.OrderStatusNotProcessed})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got OrderEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventOrderCreated, got.Event)
	require.NotNil(t, got.Order)
	assert.Equal(t, uint(7), got.Order.ID)
	assert.Equal(t, "ref-7", got.Order.OrderRef)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestNilHubBroadcastIsNoop(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Broadcast(EventOrderStatusUpdated, &models.Order{}) })
}
