package dispatcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelevent"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/inmemory"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

func webhookConfig() *config.WebhookConfig {
	return &config.WebhookConfig{
		DeliveryTimeoutSeconds: 2,
		Milestones:             "100,500,1000,5000,10000,50000,100000",
	}
}

func newTestDispatcher(t *testing.T, store *inmemory.Storage) (*Dispatcher, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	d, err := InitDispatcher(ctx, wg, webhookConfig(), store)
	if err != nil {
		t.Fatal(err)
	}
	return d, func() {
		cancel()
		wg.Wait()
	}
}

func upsert(t *testing.T, store *inmemory.Storage, sub modelstorage.WebhookSubscription) {
	if err := store.Upsert(context.Background(), sub); err != nil {
		t.Fatal(err)
	}
}

func TestEmit_FanoutRespectsEventFilters(t *testing.T) {
	var allCount, clickedCount int64
	allServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&allCount, 1)
	}))
	defer allServer.Close()
	clickedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&clickedCount, 1)
	}))
	defer clickedServer.Close()

	store := inmemory.InitStorage()
	upsert(t, store, modelstorage.WebhookSubscription{ID: "sub-all", URL: allServer.URL, Format: modelstorage.FormatCustom, Active: true})
	upsert(t, store, modelstorage.WebhookSubscription{ID: "sub-clicked", URL: clickedServer.URL, Events: []string{"link_clicked"}, Format: modelstorage.FormatCustom, Active: true})

	d, drain := newTestDispatcher(t, store)
	d.Emit(modelevent.LinkCreated, modelevent.Payload{"id": "dcs-test", "shortUrl": "https://dcs.lol/dcs-test"})
	d.Emit(modelevent.LinkClicked, modelevent.Payload{"id": "dcs-test", "clicks": int64(1)})
	drain()

	// the empty filter receives everything, the clicked filter never sees link.created
	assert.Equal(t, int64(2), atomic.LoadInt64(&allCount))
	assert.Equal(t, int64(1), atomic.LoadInt64(&clickedCount))
}

func TestEmit_SkipsInactiveSubscriptions(t *testing.T) {
	var count int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&count, 1)
	}))
	defer server.Close()

	store := inmemory.InitStorage()
	upsert(t, store, modelstorage.WebhookSubscription{ID: "sub-off", URL: server.URL, Format: modelstorage.FormatCustom, Active: false})

	d, drain := newTestDispatcher(t, store)
	d.Emit(modelevent.LinkCreated, modelevent.Payload{"id": "dcs-test"})
	drain()

	assert.Equal(t, int64(0), atomic.LoadInt64(&count))
}

func TestEmit_FailureDoesNotAffectSiblings(t *testing.T) {
	var healthyCount int64
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&healthyCount, 1)
	}))
	defer healthy.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	store := inmemory.InitStorage()
	upsert(t, store, modelstorage.WebhookSubscription{ID: "sub-broken", URL: broken.URL, Format: modelstorage.FormatCustom, Active: true})
	upsert(t, store, modelstorage.WebhookSubscription{ID: "sub-healthy", URL: healthy.URL, Format: modelstorage.FormatDiscord, Active: true})

	d, drain := newTestDispatcher(t, store)
	d.Emit(modelevent.LinkCreated, modelevent.Payload{"id": "dcs-test"})
	drain()

	assert.Equal(t, int64(1), atomic.LoadInt64(&healthyCount))

	healthySub, err := store.Get(context.Background(), "sub-healthy")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), healthySub.TotalCalls)
	assert.NotNil(t, healthySub.LastTriggeredAt)

	// a failed attempt is booked without growing totalCalls
	brokenSub, err := store.Get(context.Background(), "sub-broken")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), brokenSub.TotalCalls)
	assert.NotNil(t, brokenSub.LastTriggeredAt)
}

func TestEmit_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer slow.Close()
	defer close(release)

	store := inmemory.InitStorage()
	upsert(t, store, modelstorage.WebhookSubscription{ID: "sub-slow", URL: slow.URL, Format: modelstorage.FormatCustom, Active: true})

	d, _ := newTestDispatcher(t, store)
	start := time.Now()
	d.Emit(modelevent.LinkCreated, modelevent.Payload{"id": "dcs-test"})
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestEmit_DeliversAdaptedBody(t *testing.T) {
	bodies := make(chan map[string]interface{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies <- body
	}))
	defer server.Close()

	store := inmemory.InitStorage()
	upsert(t, store, modelstorage.WebhookSubscription{ID: "sub-custom", URL: server.URL, Format: modelstorage.FormatCustom, Active: true})

	d, drain := newTestDispatcher(t, store)
	d.Emit(modelevent.LinkClicked, modelevent.Payload{"id": "dcs-test", "clicks": int64(2)})
	drain()

	body := <-bodies
	assert.Equal(t, "link.clicked", body["type"])
	payload, ok := body["payload"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "dcs-test", payload["id"])
}

func TestTest_SynchronousDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	store := inmemory.InitStorage()
	upsert(t, store, modelstorage.WebhookSubscription{ID: "sub-test", URL: server.URL, Format: modelstorage.FormatSlack, Active: true})

	d, drain := newTestDispatcher(t, store)
	defer drain()

	status, err := d.Test(context.Background(), "sub-test")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)

	_, err = d.Test(context.Background(), "unknown")
	assert.Error(t, err)
}
