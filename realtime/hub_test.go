package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"bookingadmin/database/docstore"
	bookingRepo "bookingadmin/database/repository/booking"
	clientRepo "bookingadmin/database/repository/client"
	employeeRepo "bookingadmin/database/repository/employee"
	serviceRepo "bookingadmin/database/repository/service"
	"bookingadmin/services/booking"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func startHub(t *testing.T) (*docstore.MemoryStore, *websocket.Conn) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := docstore.NewMemoryStore()
	_ = store.Set(ctx, docstore.Bookings, "b1", map[string]interface{}{
		"clientName": "Alice", "date": "2024-06-10", "timeSlot": "10:00", "status": "pending",
	})
	svc := &booking.DefaultBookingService{
		Bookings:  bookingRepo.NewBookingRepo(store),
		Services:  serviceRepo.NewServiceRepo(store),
		Employees: employeeRepo.NewEmployeeRepo(store),
		Clients:   clientRepo.NewClientRepo(store),
	}
	hub := NewHub(svc, zap.NewNop())
	go hub.Run(ctx)

	upgrader := NewUpgrader(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hub.ServeWS(upgrader, w, r); err != nil {
			t.Errorf("ServeWS: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return store, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return msg
}

func TestHubSendsSnapshotThenUpdates(t *testing.T) {
	store, conn := startHub(t)

	msg := readMessage(t, conn)
	if msg.Type != MessageTypeBookings || msg.Dashboard == nil {
		t.Fatalf("snapshot = %+v", msg)
	}
	if msg.Stats.TotalBookings != 1 || msg.Bookings[0].ClientName != "Alice" {
		t.Errorf("snapshot content = %+v", msg.Dashboard)
	}

	_ = store.Set(context.Background(), docstore.Bookings, "b2", map[string]interface{}{
		"clientName": "Bob", "date": "2024-06-11", "timeSlot": "11:00",
	})
	msg = readMessage(t, conn)
	if msg.Stats.TotalBookings != 2 || msg.Stats.PendingBookings != 2 {
		t.Errorf("update stats = %+v", msg.Stats)
	}
}

func TestUpgraderOrigins(t *testing.T) {
	up := NewUpgrader([]string{"https://admin.example.com"})
	tests := []struct {
		origin string
		want   bool
	}{
		{"https://admin.example.com", true},
		{"https://evil.example.com", false},
		{"", true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := up.CheckOrigin(r); got != tt.want {
			t.Errorf("origin %q: got %v, want %v", tt.origin, got, tt.want)
		}
	}
}

// flakySource fails its first Watch call and succeeds afterwards.
type flakySource struct {
	mu         sync.Mutex
	watches    int
	dashboards int
	changes    chan struct{}
}

func (s *flakySource) Dashboard(ctx context.Context) (*booking.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboards++
	return &booking.Dashboard{}, nil
}

func (s *flakySource) Watch(ctx context.Context) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watches++
	if s.watches == 1 {
		return nil, errors.New("change streams unavailable")
	}
	return s.changes, nil
}

func (s *flakySource) counts() (watches, dashboards int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watches, s.dashboards
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubRetriesFailedWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &flakySource{changes: make(chan struct{}, 1)}
	hub := NewHub(source, zap.NewNop())
	hub.Backoff = 10 * time.Millisecond
	go hub.Run(ctx)

	// The initial refresh plus the one that follows a reopened watch.
	waitFor(t, "second watch", func() bool {
		watches, dashboards := source.counts()
		return watches >= 2 && dashboards >= 2
	})

	_, before := source.counts()
	source.changes <- struct{}{}
	waitFor(t, "refresh after change", func() bool {
		_, after := source.counts()
		return after > before
	})
}

func TestHubReopensEndedWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan struct{})
	source := &flakySource{changes: first}
	source.watches = 1 // skip the failing call
	hub := NewHub(source, zap.NewNop())
	hub.Backoff = 10 * time.Millisecond
	go hub.Run(ctx)

	waitFor(t, "initial watch", func() bool {
		watches, _ := source.counts()
		return watches == 2
	})
	source.mu.Lock()
	source.changes = make(chan struct{}, 1)
	source.mu.Unlock()
	close(first)

	waitFor(t, "reopened watch", func() bool {
		watches, _ := source.counts()
		return watches == 3
	})
}

func TestServeWSAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(&flakySource{changes: make(chan struct{})}, zap.NewNop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	errs := make(chan error, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errs <- hub.ServeWS(NewUpgrader(nil), w, r)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err == nil {
		defer conn.Close()
	}
	select {
	case err := <-errs:
		if !errors.Is(err, ErrHubStopped) {
			t.Errorf("ServeWS after stop = %v, want ErrHubStopped", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ServeWS blocked after the hub stopped")
	}
}

func TestClientDisconnectAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(&flakySource{changes: make(chan struct{}), watches: 1}, zap.NewNop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(NewUpgrader(nil), w, r)
	}))
	defer srv.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, "client registered", func() bool { return hub.ClientCount() == 1 })

	cancel()
	<-stopped

	// The hub closes the client's queue; the server side answers with a close frame and
	// its read loop exits without an event loop to unregister from.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				t.Errorf("unexpected close: %v", err)
			}
			break
		}
	}
	if hub.ClientCount() != 0 {
		t.Errorf("clients after stop = %d", hub.ClientCount())
	}
}
