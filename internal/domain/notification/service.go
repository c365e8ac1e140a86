package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/taskboard/internal/repository"
	"github.com/google/uuid"
)

// Service records notifications and drives their delivery.
type Service struct {
	repo      Repository
	queue     Queue
	directory Directory
	senders   map[string]Sender
	logger    *slog.Logger
}

// NewService creates a notification service. queue and directory may be nil;
// without a queue notifications are delivered inline.
func NewService(repo Repository, queue Queue, directory Directory, senders []Sender, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	byChannel := make(map[string]Sender, len(senders))
	for _, s := range senders {
		byChannel[s.Channel()] = s
	}
	return &Service{
		repo:      repo,
		queue:     queue,
		directory: directory,
		senders:   byChannel,
		logger:    logger,
	}
}

// Enqueue records a notification and schedules delivery. It never returns an
// error: failures are logged and dropped.
func (s *Service) Enqueue(ctx context.Context, req Request) {
	channels := req.Channels
	if len(channels) == 0 {
		channels = []string{ChannelPush}
	}
	data := req.Data
	if data == nil {
		data = map[string]any{}
	}

	n := &Notification{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Verb:      req.Verb,
		Data:      data,
		Channel:   channels[0],
		CreatedAt: time.Now(),
	}
	if req.ActorID != "" {
		actor := req.ActorID
		n.ActorID = &actor
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("notification not recorded", "user_id", req.UserID, "verb", req.Verb, "error", err)
		return
	}

	if s.queue != nil {
		err := s.queue.Push(ctx, n.ID, channels)
		if err == nil {
			return
		}
		s.logger.Warn("notification queue unavailable, delivering inline", "notification_id", n.ID, "error", err)
	}
	s.deliver(ctx, n, channels)
}

// Deliver loads a queued notification and sends it on channels, or on its
// stored channel when channels is empty.
func (s *Service) Deliver(ctx context.Context, id string, channels []string) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("loading notification: %w", err)
	}
	if len(channels) == 0 {
		channels = []string{n.Channel}
	}
	s.deliver(ctx, n, channels)
	return nil
}

// ListForUser returns the newest notifications for a user.
func (s *Service) ListForUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListForUser(ctx, userID, limit)
}

// MarkRead flags a notification as read.
func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

func (s *Service) deliver(ctx context.Context, n *Notification, channels []string) {
	actorName := ""
	if n.ActorID != nil && s.directory != nil {
		if name, err := s.directory.DisplayName(ctx, *n.ActorID); err == nil {
			actorName = name
		}
	}
	title, body := Format(n, actorName)

	for _, channel := range channels {
		sender, ok := s.senders[channel]
		if !ok {
			s.logger.Debug("no sender for channel", "channel", channel, "notification_id", n.ID)
			continue
		}
		if err := sender.Send(ctx, n, title, body); err != nil {
			s.logger.Warn("notification delivery failed", "channel", channel, "notification_id", n.ID, "error", err)
		}
	}
}
