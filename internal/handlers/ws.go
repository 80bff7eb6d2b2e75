package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lojinha-dev/lojinha/internal/services"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// subscriber serialises writes; gorilla connections allow one writer at a time.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(fn func(*websocket.Conn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return fn(s.conn)
}

// OrderFeed fans order events out to every connected websocket client.
type OrderFeed struct {
	mu       sync.RWMutex
	clients  map[*subscriber]bool
	upgrader websocket.Upgrader
}

func NewOrderFeed(allowedOrigins []string) *OrderFeed {
	feed := &OrderFeed{clients: make(map[*subscriber]bool)}

	feed.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	return feed
}

func (f *OrderFeed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.clients)
}

func (f *OrderFeed) remove(sub *subscriber) {
	f.mu.Lock()
	delete(f.clients, sub)
	f.mu.Unlock()
}

// Publish implements services.OrderPublisher.
func (f *OrderFeed) Publish(event services.OrderEvent) {
	f.mu.RLock()
	if len(f.clients) == 0 {
		f.mu.RUnlock()
		return
	}

	// copy so the lock is not held while writing
	subs := make([]*subscriber, 0, len(f.clients))
	for sub := range f.clients {
		subs = append(subs, sub)
	}
	f.mu.RUnlock()

	for _, sub := range subs {
		err := sub.write(func(conn *websocket.Conn) error { return conn.WriteJSON(event) })

		if err != nil {
			log.Printf("Failed to broadcast order event to client: %v", err)
			f.remove(sub)
			sub.conn.Close()
		}
	}
}

func (f *OrderFeed) Serve(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	sub := &subscriber{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	f.mu.Lock()
	f.clients[sub] = true
	f.mu.Unlock()

	defer func() {
		f.remove(sub)
		conn.Close()
		log.Debug("Order feed connection closed")
	}()

	err = sub.write(func(conn *websocket.Conn) error {
		return conn.WriteJSON(map[string]string{
			"type":    "connected",
			"message": "Conectado ao feed de pedidos",
		})
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := sub.write(func(conn *websocket.Conn) error {
					return conn.WriteMessage(websocket.PingMessage, nil)
				}); err != nil {
					log.Printf("Order feed ping failed: %v", err)
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Order feed websocket error: %v", err)
			}
			break
		}
	}
}
