package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/KD5VMF/GPS-Clock/internal/clock"
	"github.com/KD5VMF/GPS-Clock/internal/config"
	"github.com/KD5VMF/GPS-Clock/internal/zone"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local clock UI, any origin is fine
	},
}

// wsHub owns the websocket clients. gorilla/websocket allows at most one
// concurrent writer per connection, so the initial push on connect and the
// per-second broadcast share one lock; a connection is never visible to
// broadcast until its initial push has finished.
type wsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newWSHub() *wsHub {
	return &wsHub{clients: make(map[*websocket.Conn]bool)}
}

// add sends the last known time, if any, then registers the connection.
func (h *wsHub) add(conn *websocket.Conn, last clock.LocalizedTime, have bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if have {
		if err := conn.WriteJSON(last); err != nil {
			log.Printf("web: websocket write error: %v", err)
			conn.Close()
			return
		}
	}
	h.clients[conn] = true
}

// remove drops a connection whose peer went away.
func (h *wsHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcast pushes one time value to every client, dropping any that fail.
func (h *wsHub) broadcast(t clock.LocalizedTime) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(t); err != nil {
			log.Printf("web: websocket write error, dropping client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// RunWeb serves the browser clock: a JSON API for the latest time and the
// zone catalog, a websocket pushing each new second, and the static page.
// Zone changes are published retained to the zone topic so the clock
// process applies and persists them.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu       sync.RWMutex
		lastTime clock.LocalizedTime
		haveTime bool
	)

	hub := newWSHub()

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe to the time topic, remember and push each update
	token := client.Subscribe(cfg.TopicTime, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var t clock.LocalizedTime
		if err := json.Unmarshal(msg.Payload(), &t); err != nil {
			log.Printf("web: time unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastTime = t
		haveTime = true
		mu.Unlock()
		hub.broadcast(t)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicTime)

	// 3) JSON API endpoint: latest time
	http.HandleFunc("/api/time", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveTime {
			http.Error(w, "no time yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastTime); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) JSON API endpoint: selectable zones
	http.HandleFunc("/api/zones", func(w http.ResponseWriter, r *http.Request) {
		zones, err := zone.Catalog()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(zones); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 5) Zone change: validated here, applied and persisted by the clock
	http.HandleFunc("/api/zone", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Zone string `json:"zone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := zone.Validate(req.Zone); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t := client.Publish(cfg.TopicZone, 0, true, []byte(req.Zone))
		t.Wait()
		if t.Error() != nil {
			http.Error(w, t.Error().Error(), http.StatusBadGateway)
			return
		}
		log.Printf("web: zone change requested: %s", req.Zone)
		w.WriteHeader(http.StatusNoContent)
	})

	// 6) Live push over websocket
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}

		mu.RLock()
		t, have := lastTime, haveTime
		mu.RUnlock()
		hub.add(conn, t, have)

		// Read loop exists only to notice the peer going away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.remove(conn)
					return
				}
			}
		}()
	})

	// 7) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
