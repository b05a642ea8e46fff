// Package dispatcher provides best-effort fan-out of lifecycle events to
// registered webhook endpoints.
package dispatcher

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/metrics"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/dispatcher"
	serviceErrors "github.com/dcslol/dcs_go_invite_shortener/internal/service/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/format"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelevent"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ dispatcher.Emitter = (*Dispatcher)(nil)
)

// Dispatcher struct defines data structure handling and provides support for adding new implementations.
type Dispatcher struct {
	webhookStorage storage.WebhookStorage
	client         *resty.Client
	timeout        time.Duration
	inflight       sync.WaitGroup
}

// InitDispatcher initializes a Dispatcher object and sets its attributes. The
// shutdown goroutine drains in-flight deliveries once ctx is cancelled.
func InitDispatcher(ctx context.Context, wg *sync.WaitGroup, cfg *config.WebhookConfig, s storage.WebhookStorage) (*Dispatcher, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to dispatcher initializer"}
	}
	timeout := time.Duration(cfg.DeliveryTimeoutSeconds) * time.Second
	d := &Dispatcher{
		webhookStorage: s,
		client:         resty.New().SetTimeout(timeout),
		timeout:        timeout,
	}
	go func() {
		defer wg.Done()
		<-ctx.Done()
		d.inflight.Wait()
		log.Info().Msg("webhook dispatcher drained successfully")
	}()
	return d, nil
}

// Emit loads matching subscriptions and attempts one delivery per subscription,
// each in its own goroutine. The triggering operation never waits on any of
// them, and no delivery failure ever reaches the caller.
func (d *Dispatcher) Emit(eventType modelevent.Type, payload modelevent.Payload) {
	event := modelevent.Event{Type: eventType, Payload: payload, Timestamp: time.Now()}
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		subs, err := d.webhookStorage.List(ctx)
		if err != nil {
			log.Error().Err(err).Str("event", string(eventType)).Msg("listing webhook subscriptions failed")
			return
		}
		for _, sub := range subs {
			if !sub.Active {
				continue
			}
			if !sub.Subscribed(eventType.WireID()) {
				continue
			}
			d.inflight.Add(1)
			go func(sub modelstorage.WebhookSubscription) {
				defer d.inflight.Done()
				d.deliver(sub, event)
			}(sub)
		}
	}()
}

// deliver performs a single best-effort delivery attempt and bookkeeps it.
func (d *Dispatcher) deliver(sub modelstorage.WebhookSubscription, event modelevent.Event) {
	status, err := d.post(sub, event)
	success := err == nil && status >= 200 && status < 300
	if success {
		metrics.Deliveries.WithLabelValues("success").Inc()
	} else {
		metrics.Deliveries.WithLabelValues("failure").Inc()
		deliveryErr := &serviceErrors.DeliveryError{SubscriptionID: sub.ID, Err: err}
		log.Warn().Err(deliveryErr).Str("url", sub.URL).Int("status", status).Str("event", string(event.Type)).Msg("webhook delivery failed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.webhookStorage.RecordDelivery(ctx, sub.ID, success, time.Now()); err != nil {
		log.Error().Err(err).Str("subscription", sub.ID).Msg("recording webhook delivery failed")
	}
}

// Test synchronously sends a synthetic payload to one subscription.
func (d *Dispatcher) Test(ctx context.Context, subscriptionID string) (int, error) {
	sub, err := d.webhookStorage.Get(ctx, subscriptionID)
	if err != nil {
		return 0, err
	}
	event := modelevent.Event{
		Type: modelevent.WebhookTest,
		Payload: modelevent.Payload{
			"id":       "webhook-test",
			"shortUrl": "https://dcs.lol/webhook-test",
			"clicks":   int64(0),
		},
		Timestamp: time.Now(),
	}
	status, err := d.post(sub, event)
	if err != nil {
		return 0, &serviceErrors.DeliveryError{SubscriptionID: sub.ID, Err: err}
	}
	return status, nil
}

func (d *Dispatcher) post(sub modelstorage.WebhookSubscription, event modelevent.Event) (int, error) {
	body, err := format.Adapt(sub.Format, event.Type, event.Payload, event.Timestamp)
	if err != nil {
		return 0, err
	}
	res, err := d.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(sub.URL)
	if err != nil {
		return 0, err
	}
	return res.StatusCode(), nil
}
