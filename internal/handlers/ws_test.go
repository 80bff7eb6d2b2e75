package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFeedBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)

	feed := NewOrderFeed([]string{"http://localhost:5173"})
	r := gin.New()
	r.GET("/ws", feed.Serve)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"http://localhost:5173"}}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var welcome map[string]string
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome["type"])
	assert.Equal(t, 1, feed.Subscribers())

	event := services.OrderEvent{Type: services.OrderUpdated, OrderID: uuid.New(), Status: models.StatusEnviado}
	feed.Publish(event)

	var got services.OrderEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, event, got)
}

func TestOrderFeedRejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	feed := NewOrderFeed([]string{"http://localhost:5173"})
	r := gin.New()
	r.GET("/ws", feed.Serve)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, feed.Subscribers())
}
