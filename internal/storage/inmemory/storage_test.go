package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	storageErrors "github.com/dcslol/dcs_go_invite_shortener/internal/storage/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

func TestCreateUnique(t *testing.T) {
	st := InitStorage()
	ctx := context.Background()

	link, err := st.CreateUnique(ctx, "dcs-test", "https://discord.gg/abcXYZ", "someUserID")
	assert.NoError(t, err)
	assert.Equal(t, "dcs-test", link.ShortID)
	assert.Equal(t, int64(0), link.Clicks)

	_, err = st.CreateUnique(ctx, "dcs-test", "https://discord.gg/other", "")
	var alreadyExists *storageErrors.AlreadyExistsError
	assert.True(t, errors.As(err, &alreadyExists))
}

func TestIncrementClicksConcurrent(t *testing.T) {
	st := InitStorage()
	ctx := context.Background()
	_, err := st.CreateUnique(ctx, "dcs-test", "https://discord.gg/abcXYZ", "")
	assert.NoError(t, err)

	const n = 100
	wg := &sync.WaitGroup{}
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = st.IncrementClicks(ctx, "dcs-test")
		}()
	}
	wg.Wait()

	link, err := st.Retrieve(ctx, "dcs-test")
	assert.NoError(t, err)
	assert.Equal(t, int64(n), link.Clicks)
}

func TestRename(t *testing.T) {
	st := InitStorage()
	ctx := context.Background()
	_, err := st.CreateUnique(ctx, "dcs-test", "https://discord.gg/abcXYZ", "someUserID")
	assert.NoError(t, err)
	_, err = st.CreateUnique(ctx, "dcs-taken", "https://discord.gg/defUVW", "someUserID")
	assert.NoError(t, err)

	var alreadyExists *storageErrors.AlreadyExistsError
	assert.True(t, errors.As(st.Rename(ctx, "dcs-test", "dcs-taken"), &alreadyExists))

	var notFound *storageErrors.NotFoundError
	assert.True(t, errors.As(st.Rename(ctx, "dcs-missing", "dcs-next"), &notFound))

	assert.NoError(t, st.Rename(ctx, "dcs-test", "dcs-next"))
	link, err := st.Retrieve(ctx, "dcs-next")
	assert.NoError(t, err)
	assert.Equal(t, "dcs-next", link.ShortID)
	_, err = st.Retrieve(ctx, "dcs-test")
	assert.True(t, errors.As(err, &notFound))
}

func TestUpsertByExternalID(t *testing.T) {
	st := InitStorage()
	ctx := context.Background()

	first, err := st.UpsertByExternalID(ctx, "123456789", "someUser", "https://cdn.example/a.png")
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	// repeated upserts refresh the profile but keep the local ID stable
	second, err := st.UpsertByExternalID(ctx, "123456789", "someRenamedUser", "https://cdn.example/b.png")
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := st.UpsertByExternalID(ctx, "987654321", "someOtherUser", "")
	assert.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestRecordDelivery(t *testing.T) {
	st := InitStorage()
	ctx := context.Background()
	err := st.Upsert(ctx, modelstorage.WebhookSubscription{ID: "sub-test", URL: "https://hooks.example/x", Format: modelstorage.FormatCustom, Active: true})
	assert.NoError(t, err)

	now := time.Now()
	assert.NoError(t, st.RecordDelivery(ctx, "sub-test", true, now))
	assert.NoError(t, st.RecordDelivery(ctx, "sub-test", false, now.Add(time.Second)))

	sub, err := st.Get(ctx, "sub-test")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), sub.TotalCalls)
	assert.NotNil(t, sub.LastTriggeredAt)
	assert.Equal(t, now.Add(time.Second), *sub.LastTriggeredAt)

	var notFound *storageErrors.NotFoundError
	assert.True(t, errors.As(st.RecordDelivery(ctx, "sub-missing", true, now), &notFound))
}

func TestWebhookUpsertPreservesCounters(t *testing.T) {
	st := InitStorage()
	ctx := context.Background()
	assert.NoError(t, st.Upsert(ctx, modelstorage.WebhookSubscription{ID: "sub-test", URL: "https://hooks.example/x", Format: modelstorage.FormatDiscord, Active: true}))
	assert.NoError(t, st.RecordDelivery(ctx, "sub-test", true, time.Now()))

	// re-registering the endpoint must not reset the delivery bookkeeping
	assert.NoError(t, st.Upsert(ctx, modelstorage.WebhookSubscription{ID: "sub-test", URL: "https://hooks.example/y", Format: modelstorage.FormatSlack, Active: false}))
	sub, err := st.Get(ctx, "sub-test")
	assert.NoError(t, err)
	assert.Equal(t, "https://hooks.example/y", sub.URL)
	assert.Equal(t, int64(1), sub.TotalCalls)
	assert.NotNil(t, sub.LastTriggeredAt)
}
