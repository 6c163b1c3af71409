package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shelfwatch/shelfwatch/cooldown"
	"github.com/shelfwatch/shelfwatch/display"
	"github.com/shelfwatch/shelfwatch/eventlog"
	"github.com/shelfwatch/shelfwatch/models"
	"github.com/shelfwatch/shelfwatch/push"
)

// SubmitInput carries one raw staff report.
type SubmitInput struct {
	Item      string
	Quantity  string
	Location  string
	IP        string
	UserAgent string
}

// SubmitResult describes what happened to a report: the recorded event,
// and whether a push notification went out or the cooldown (or missing
// push configuration) kept it to a log-only entry.
type SubmitResult struct {
	Event    models.AlertEvent
	Notified bool
}

// AlertService handles staff alert intake: normalize for display, always
// record the event, conditionally dispatch a push notification.
type AlertService interface {
	Submit(ctx context.Context, input SubmitInput) *SubmitResult
}

type alertService struct {
	store     eventlog.Store
	notifier  push.Client
	gate      *cooldown.Gate
	logger    *zap.Logger
	targetURL string
	now       nowFunc
}

// NewAlertService creates the intake service. A nil notifier disables
// push delivery; events are still logged.
func NewAlertService(store eventlog.Store, notifier push.Client, gate *cooldown.Gate, logger *zap.Logger, targetURL string) AlertService {
	return &alertService{
		store:     store,
		notifier:  notifier,
		gate:      gate,
		logger:    logger,
		targetURL: targetURL,
		now:       time.Now,
	}
}

// Submit records the report and attempts a push. Neither a failed log
// append nor a failed dispatch surfaces to the caller: recording the
// shortage must not fail because auxiliary telemetry did.
func (s *alertService) Submit(ctx context.Context, input SubmitInput) *SubmitResult {
	now := s.now()

	event := models.AlertEvent{
		Timestamp: now,
		Item:      display.Title(input.Item),
		Status:    display.Title(input.Quantity),
		Location:  display.Title(input.Location),
		IP:        input.IP,
		UserAgent: input.UserAgent,
	}

	// The log append always happens, whatever the cooldown decides.
	if err := s.store.Append(ctx, &event); err != nil {
		s.logger.Error("failed to append alert event",
			zap.String("item", event.Item),
			zap.Error(err),
		)
	}

	result := &SubmitResult{Event: event}
	if s.notifier == nil {
		return result
	}

	key := cooldown.Key(input.Item, input.Location)
	if s.gate.ShouldSuppress(key, now) {
		s.logger.Info("notification suppressed by cooldown",
			zap.String("key", key),
		)
		return result
	}

	s.gate.RecordFired(key, now)

	title := "Stock Alert"
	body := fmt.Sprintf("%s is %s", event.Item, event.Status)
	if event.Location != "" {
		body += fmt.Sprintf(" (%s)", event.Location)
	}

	if err := s.notifier.Send(ctx, title, body, s.targetURL); err != nil {
		s.logger.Error("failed to dispatch notification",
			zap.String("key", key),
			zap.Error(err),
		)
		return result
	}

	result.Notified = true
	return result
}
