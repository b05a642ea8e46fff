// Package clicks provides atomic click accounting and milestone detection for
// shortened invite links.
package clicks

import (
	"context"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/metrics"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/clicks"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/dispatcher"
	serviceErrors "github.com/dcslol/dcs_go_invite_shortener/internal/service/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelevent"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
)

// Check interface implementation explicitly
var (
	_ clicks.Tracker = (*Tracker)(nil)
)

// Tracker struct defines data structure handling and provides support for adding new implementations.
type Tracker struct {
	linkStorage storage.LinkStorage
	emitter     dispatcher.Emitter
	thresholds  []int64
}

// InitTracker initializes a Tracker object and sets its attributes.
func InitTracker(cfg *config.WebhookConfig, s storage.LinkStorage, e dispatcher.Emitter) (*Tracker, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if e == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil dispatcher was passed to service initializer"}
	}
	return &Tracker{
		linkStorage: s,
		emitter:     e,
		thresholds:  cfg.MilestoneThresholds(),
	}, nil
}

// RecordClick increments the link's click counter via a single atomic
// read-modify-write at the store, then emits link.clicked and, when the new
// count lands exactly on a configured threshold, link.milestone.
func (t *Tracker) RecordClick(ctx context.Context, shortID string) (int64, error) {
	newCount, err := t.linkStorage.IncrementClicks(ctx, shortID)
	if err != nil {
		return 0, err
	}
	metrics.Clicks.Inc()
	t.emitter.Emit(modelevent.LinkClicked, modelevent.Payload{
		"id":     shortID,
		"clicks": newCount,
	})
	t.checkMilestone(shortID, newCount)
	return newCount, nil
}

// checkMilestone fires at most once per threshold: increments are always +1,
// so exact equality holds exactly when the counter first reaches a threshold.
func (t *Tracker) checkMilestone(shortID string, newCount int64) {
	for _, threshold := range t.thresholds {
		if newCount == threshold {
			metrics.Milestones.Inc()
			t.emitter.Emit(modelevent.LinkMilestone, modelevent.Payload{
				"id":        shortID,
				"clicks":    newCount,
				"milestone": threshold,
			})
			return
		}
		if newCount < threshold {
			return
		}
	}
}
