package clicks

import (
	"context"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/mocks"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelevent"
	storageErrors "github.com/dcslol/dcs_go_invite_shortener/internal/storage/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/inmemory"
)

type recordedEvent struct {
	eventType modelevent.Type
	payload   modelevent.Payload
}

// recordingEmitter captures emitted events instead of dispatching them.
type recordingEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (e *recordingEmitter) Emit(eventType modelevent.Type, payload modelevent.Payload) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, recordedEvent{eventType: eventType, payload: payload})
}

func (e *recordingEmitter) Test(ctx context.Context, subscriptionID string) (int, error) {
	return 0, nil
}

func (e *recordingEmitter) byType(eventType modelevent.Type) []recordedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []recordedEvent
	for _, ev := range e.events {
		if ev.eventType == eventType {
			out = append(out, ev)
		}
	}
	return out
}

func webhookConfig() *config.WebhookConfig {
	return &config.WebhookConfig{
		DeliveryTimeoutSeconds: 5,
		Milestones:             "100,500,1000,5000,10000,50000,100000",
	}
}

func TestInitTracker_NilStorage(t *testing.T) {
	_, err := InitTracker(webhookConfig(), nil, &recordingEmitter{})
	assert.Equal(t, "nil storage was passed to service initializer", err.Error())
}

func TestRecordClick_NotFound(t *testing.T) {
	emitter := &recordingEmitter{}
	tracker, _ := InitTracker(webhookConfig(), inmemory.InitStorage(), emitter)
	_, err := tracker.RecordClick(context.Background(), "missing")
	var notFound *storageErrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Empty(t, emitter.byType(modelevent.LinkClicked))
}

func TestRecordClick_EmitsClicked(t *testing.T) {
	store := inmemory.InitStorage()
	_, err := store.CreateUnique(context.Background(), "dcs-test", "https://discord.gg/abcXYZ", "")
	assert.NoError(t, err)
	emitter := &recordingEmitter{}
	tracker, _ := InitTracker(webhookConfig(), store, emitter)

	count, err := tracker.RecordClick(context.Background(), "dcs-test")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	clicked := emitter.byType(modelevent.LinkClicked)
	assert.Len(t, clicked, 1)
	assert.Equal(t, "dcs-test", clicked[0].payload["id"])
	assert.Equal(t, int64(1), clicked[0].payload["clicks"])
	assert.Empty(t, emitter.byType(modelevent.LinkMilestone))
}

func TestRecordClick_ConcurrentIncrementsNeverLost(t *testing.T) {
	store := inmemory.InitStorage()
	_, err := store.CreateUnique(context.Background(), "dcs-test", "https://discord.gg/abcXYZ", "")
	assert.NoError(t, err)
	tracker, _ := InitTracker(webhookConfig(), store, &recordingEmitter{})

	const clicks = 50
	var wg sync.WaitGroup
	wg.Add(clicks)
	for i := 0; i < clicks; i++ {
		go func() {
			defer wg.Done()
			_, err := tracker.RecordClick(context.Background(), "dcs-test")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	link, err := store.Retrieve(context.Background(), "dcs-test")
	assert.NoError(t, err)
	assert.Equal(t, int64(clicks), link.Clicks)
}

func TestRecordClick_MilestoneFiresExactlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockLinkStorage(ctrl)
	emitter := &recordingEmitter{}
	tracker, _ := InitTracker(webhookConfig(), s, emitter)

	// 99 -> 100 fires the milestone, 100 -> 101 does not
	first := s.EXPECT().IncrementClicks(gomock.Any(), "dcs-test").Return(int64(100), nil)
	s.EXPECT().IncrementClicks(gomock.Any(), "dcs-test").After(first).Return(int64(101), nil)

	count, err := tracker.RecordClick(context.Background(), "dcs-test")
	assert.NoError(t, err)
	assert.Equal(t, int64(100), count)

	milestones := emitter.byType(modelevent.LinkMilestone)
	assert.Len(t, milestones, 1)
	assert.Equal(t, int64(100), milestones[0].payload["milestone"])
	assert.Equal(t, int64(100), milestones[0].payload["clicks"])

	_, err = tracker.RecordClick(context.Background(), "dcs-test")
	assert.NoError(t, err)
	assert.Len(t, emitter.byType(modelevent.LinkMilestone), 1)
	assert.Len(t, emitter.byType(modelevent.LinkClicked), 2)
}

func TestRecordClick_NonMilestoneCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockLinkStorage(ctrl)
	emitter := &recordingEmitter{}
	tracker, _ := InitTracker(webhookConfig(), s, emitter)

	for _, count := range []int64{1, 99, 101, 499, 100001} {
		s.EXPECT().IncrementClicks(gomock.Any(), "dcs-test").Return(count, nil)
		_, err := tracker.RecordClick(context.Background(), "dcs-test")
		assert.NoError(t, err)
	}
	assert.Empty(t, emitter.byType(modelevent.LinkMilestone))
}
