package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/kirbo/go-sensorsim/internal/models"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSubscribeHandlesPublishedEnvelopes(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	handled := make(chan models.Envelope, 1)
	store := storeFunc(func(env models.Envelope) { handled <- env })
	r, _ := newTestRelay(store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Subscribe(ctx, rdb) }()

	waitFor(t, func() bool { return mr.PubSubNumPat() == 1 })
	mr.Publish("reading:1", envelope(t, good))

	select {
	case env := <-handled:
		if env.Reading != good {
			t.Errorf("handled %+v", env.Reading)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("envelope not handled")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}

type storeFunc func(models.Envelope)

func (f storeFunc) InsertReading(ctx context.Context, env models.Envelope) error {
	f(env)
	return nil
}

func TestWarmFromRedisLoadsStoredEnvelopes(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	second := good
	second.SensorID = 2
	mr.Set("reading:1", envelope(t, good))
	mr.Set("reading:2", envelope(t, second))
	mr.Set("unrelated", "x")

	r, _ := newTestRelay(nil, nil)
	if err := r.WarmFromRedis(context.Background(), rdb); err != nil {
		t.Fatalf("WarmFromRedis: %v", err)
	}

	if got := r.Latest(); len(got) != 2 || got[0].SensorID != 1 || got[1].SensorID != 2 {
		t.Errorf("Latest = %+v", got)
	}
}

func TestRouterServesLatest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server, b, err := NewSocketServer()
	if err != nil {
		t.Fatalf("NewSocketServer: %v", err)
	}

	r, _ := newTestRelay(nil, b)
	r.Attach(server)
	if err := r.Handle(context.Background(), envelope(t, good)); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	rec := httptest.NewRecorder()
	r.NewRouter(server, "*").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/latest", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin = %q", got)
	}

	var latest []models.BroadcastMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &latest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(latest) != 1 || latest[0].SensorID != 1 {
		t.Errorf("latest = %+v", latest)
	}
}

func TestRouterAnswersPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server, _, err := NewSocketServer()
	if err != nil {
		t.Fatalf("NewSocketServer: %v", err)
	}

	r, _ := newTestRelay(nil, nil)
	rec := httptest.NewRecorder()
	r.NewRouter(server, "https://dash.example").ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/latest", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
