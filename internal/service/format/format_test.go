package format

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelevent"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

var testTS = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestAdapt_DiscordDeterminism(t *testing.T) {
	payload := modelevent.Payload{"id": "x", "shortUrl": "https://dcs.lol/x"}
	first, err := Adapt(modelstorage.FormatDiscord, modelevent.LinkCreated, payload, testTS)
	assert.NoError(t, err)
	second, err := Adapt(modelstorage.FormatDiscord, modelevent.LinkCreated, payload, testTS)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAdapt_DiscordFields(t *testing.T) {
	payload := modelevent.Payload{"id": "dcs-test", "clicks": int64(100), "shortUrl": "https://dcs.lol/dcs-test"}
	raw, err := Adapt(modelstorage.FormatDiscord, modelevent.LinkMilestone, payload, testTS)
	assert.NoError(t, err)

	var msg discordMessage
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]
	assert.Equal(t, colorMilestone, embed.Color)
	assert.Equal(t, "2024-05-01T12:00:00Z", embed.Timestamp)
	// only present payload keys become fields, in stable label order
	assert.Equal(t, []discordField{
		{Name: "Link", Value: "dcs-test", Inline: true},
		{Name: "Short URL", Value: "https://dcs.lol/dcs-test", Inline: true},
		{Name: "Clicks", Value: "100", Inline: true},
	}, embed.Fields)
}

func TestAdapt_DiscordOmitsAbsentKeys(t *testing.T) {
	raw, err := Adapt(modelstorage.FormatDiscord, modelevent.LinkCreated, modelevent.Payload{"id": "x"}, testTS)
	assert.NoError(t, err)
	var msg discordMessage
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, []discordField{{Name: "Link", Value: "x", Inline: true}}, msg.Embeds[0].Fields)
}

func TestAdapt_Slack(t *testing.T) {
	payload := modelevent.Payload{"id": "dcs-test", "clicks": int64(2)}
	raw, err := Adapt(modelstorage.FormatSlack, modelevent.LinkClicked, payload, testTS)
	assert.NoError(t, err)

	var msg slackMessage
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Contains(t, msg.Text, "dcs-test")
	assert.Len(t, msg.Blocks, 2)
	assert.Equal(t, "section", msg.Blocks[0].Type)
	assert.Equal(t, "context", msg.Blocks[1].Type)
	assert.Contains(t, msg.Blocks[1].Elements[0].Text, "clicks: 2")
}

func TestAdapt_CustomPassthrough(t *testing.T) {
	payload := modelevent.Payload{"id": "x", "clicks": int64(5)}
	raw, err := Adapt(modelstorage.FormatCustom, modelevent.LinkClicked, payload, testTS)
	assert.NoError(t, err)

	var msg struct {
		Type      string                 `json:"type"`
		Timestamp int64                  `json:"timestamp"`
		Payload   map[string]interface{} `json:"payload"`
	}
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "link.clicked", msg.Type)
	assert.Equal(t, testTS.UnixMilli(), msg.Timestamp)
	assert.Equal(t, "x", msg.Payload["id"])
	assert.Equal(t, float64(5), msg.Payload["clicks"])
}

func TestAdapt_DoesNotMutatePayload(t *testing.T) {
	payload := modelevent.Payload{"id": "x"}
	_, err := Adapt(modelstorage.FormatDiscord, modelevent.LinkCreated, payload, testTS)
	assert.NoError(t, err)
	assert.Equal(t, modelevent.Payload{"id": "x"}, payload)
}

func TestAdapt_UnknownFormat(t *testing.T) {
	_, err := Adapt(modelstorage.WebhookFormat("smoke"), modelevent.LinkCreated, modelevent.Payload{}, testTS)
	assert.Error(t, err)
}
