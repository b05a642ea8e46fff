// Package format provides pure translation of lifecycle events into
// destination-specific webhook payloads.
package format

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelevent"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

// Discord embed colors per event type.
const (
	colorCreated   = 5763719
	colorClicked   = 5793266
	colorMilestone = 16705372
	colorTest      = 10070709
)

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title     string         `json:"title"`
	Color     int            `json:"color"`
	Timestamp string         `json:"timestamp"`
	Fields    []discordField `json:"fields"`
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackMessage struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type customMessage struct {
	Type      string             `json:"type"`
	Timestamp int64              `json:"timestamp"`
	Payload   modelevent.Payload `json:"payload"`
}

// Adapt builds the wire message for one subscription format. It never mutates
// its inputs and produces identical output for identical inputs.
func Adapt(f modelstorage.WebhookFormat, eventType modelevent.Type, payload modelevent.Payload, ts time.Time) ([]byte, error) {
	switch f {
	case modelstorage.FormatDiscord:
		return json.Marshal(discordFor(eventType, payload, ts))
	case modelstorage.FormatSlack:
		return json.Marshal(slackFor(eventType, payload))
	case modelstorage.FormatCustom:
		return json.Marshal(customMessage{
			Type:      string(eventType),
			Timestamp: ts.UnixMilli(),
			Payload:   payload,
		})
	default:
		return nil, fmt.Errorf("%s: unknown webhook format", f)
	}
}

func discordFor(eventType modelevent.Type, payload modelevent.Payload, ts time.Time) discordMessage {
	var title string
	var color int
	switch eventType {
	case modelevent.LinkCreated:
		title = "New invite link created"
		color = colorCreated
	case modelevent.LinkClicked:
		title = "Invite link clicked"
		color = colorClicked
	case modelevent.LinkMilestone:
		title = "Click milestone reached"
		color = colorMilestone
	default:
		title = "Webhook test"
		color = colorTest
	}
	// stable field order, keys included only when present in the payload
	fields := make([]discordField, 0, 4)
	for _, spec := range []struct {
		key   string
		label string
	}{
		{"id", "Link"},
		{"shortUrl", "Short URL"},
		{"clicks", "Clicks"},
		{"originalUrl", "Destination"},
	} {
		if value, ok := payload[spec.key]; ok {
			fields = append(fields, discordField{Name: spec.label, Value: fmt.Sprintf("%v", value), Inline: true})
		}
	}
	return discordMessage{
		Embeds: []discordEmbed{{
			Title:     title,
			Color:     color,
			Timestamp: ts.UTC().Format(time.RFC3339),
			Fields:    fields,
		}},
	}
}

func slackFor(eventType modelevent.Type, payload modelevent.Payload) slackMessage {
	var summary string
	switch eventType {
	case modelevent.LinkCreated:
		summary = fmt.Sprintf(":link: New invite link created: %v", payload["id"])
	case modelevent.LinkClicked:
		summary = fmt.Sprintf(":point_up: Invite link clicked: %v", payload["id"])
	case modelevent.LinkMilestone:
		summary = fmt.Sprintf(":tada: Click milestone reached: %v", payload["id"])
	default:
		summary = ":white_check_mark: Webhook test"
	}
	context := fmt.Sprintf("id: %v | clicks: %v", payload["id"], payload["clicks"])
	return slackMessage{
		Text: summary,
		Blocks: []slackBlock{
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: summary}},
			{Type: "context", Elements: []slackText{{Type: "mrkdwn", Text: context}}},
		},
	}
}
