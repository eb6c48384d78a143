package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KD5VMF/GPS-Clock/internal/clock"
)

func wsTestTime() clock.LocalizedTime {
	return clock.LocalizedTime{
		Year: 2024, Month: 3, Day: 10,
		Hour: 3, Minute: 30, Second: 0,
		Zone: "America/New_York",
		UTC:  time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC),
	}
}

// Connecting clients while the hub is broadcasting must not produce two
// writers on the same connection: the initial push and the broadcast are
// serialized, and a client is only registered once its push has finished.
func TestHubConnectDuringBroadcast(t *testing.T) {
	hub := newWSHub()
	last := wsTestTime()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.add(conn, last, true)
	}))
	defer srv.Close()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				hub.broadcast(last)
			}
		}
	}()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	for i := 0; i < 25; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)

		// The first frame is the initial push; with the broadcaster
		// spinning, any write race would panic the server side.
		var got clock.LocalizedTime
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, last.Hour, got.Hour)
		assert.Equal(t, last.Zone, got.Zone)
		conn.Close()
	}

	close(stop)
	wg.Wait()
}

// A client whose connection dies is dropped on the next broadcast instead
// of wedging the hub.
func TestHubDropsDeadClient(t *testing.T) {
	hub := newWSHub()
	last := wsTestTime()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.add(conn, last, false)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	// Wait until the server side has registered the connection.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	// Closed TCP peers may absorb a write or two before erroring.
	require.Eventually(t, func() bool {
		hub.broadcast(last)
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 0
	}, 2*time.Second, 20*time.Millisecond)
}
