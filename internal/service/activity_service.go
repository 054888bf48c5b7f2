package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/project-board/internal/config"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
)

// ActivityJournal stores activity entries.
type ActivityJournal interface {
	Append(ctx context.Context, entry *domain.ActivityEntry) error
}

// EventBroadcaster fans events out to external subscribers.
type EventBroadcaster interface {
	Publish(ctx context.Context, channel string, message []byte) error
}

// ActivityService records board events in the journal and broadcasts them.
type ActivityService struct {
	logger      *zap.Logger
	journal     ActivityJournal
	broadcaster EventBroadcaster
	channel     string
	timeout     time.Duration
}

// ActivityDependencies bundles the optional sinks. Nil sinks are skipped.
type ActivityDependencies struct {
	Journal     ActivityJournal
	Broadcaster EventBroadcaster
}

// NewActivityService creates the service.
func NewActivityService(logger *zap.Logger, deps ActivityDependencies, cfg config.EventsConfig) *ActivityService {
	return &ActivityService{
		logger:      logger,
		journal:     deps.Journal,
		broadcaster: deps.Broadcaster,
		channel:     cfg.Channel,
		timeout:     cfg.PublishTimeout(),
	}
}

// Handle logs a board event and records it in the configured sinks.
func (a *ActivityService) Handle(ctx context.Context, event events.Event) error {
	a.logger.Info("board activity",
		zap.String("event_type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.Any("payload", event.Payload))
	return a.record(ctx, event)
}

// record writes the event to the journal and the broadcast channel.
// Sink failures are logged and reported but never undo the board change.
func (a *ActivityService) record(ctx context.Context, event events.Event) error {
	if a.journal == nil && a.broadcaster == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
	defer cancel()

	var firstErr error
	if a.journal != nil {
		if err := a.appendToJournal(ctx, event); err != nil {
			a.logger.Warn("activity journal append failed", zap.String("event_id", event.ID), zap.Error(err))
			firstErr = err
		}
	}
	if a.broadcaster != nil {
		if err := a.broadcast(ctx, event); err != nil {
			a.logger.Warn("event broadcast failed", zap.String("event_id", event.ID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (a *ActivityService) appendToJournal(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	return a.journal.Append(ctx, &domain.ActivityEntry{
		ID:         event.ID,
		EventType:  string(event.Type),
		EntityID:   event.EntityID,
		Payload:    payload,
		OccurredAt: event.Timestamp,
	})
}

func (a *ActivityService) broadcast(ctx context.Context, event events.Event) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return a.broadcaster.Publish(ctx, a.channel, message)
}
