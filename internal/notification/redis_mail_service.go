package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ MailService = (*RedisMailService)(nil)

// Publisher is the part of *redis.Client the mail service needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Message is the payload published for the mail worker.
type Message struct {
	ID      uuid.UUID `json:"id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// RedisMailService publishes mails on a Redis channel; a separate worker
// subscribed to the channel does the SMTP delivery.
type RedisMailService struct {
	logger    *slog.Logger
	publisher Publisher
	channel   string
	mailFrom  string
	mailTo    string
	now       func() time.Time
}

func NewRedisMailService(publisher Publisher, channel, mailFrom, mailTo string, logger *slog.Logger) *RedisMailService {
	return &RedisMailService{
		logger:    logger.With(slog.String("component", "RedisMailService")),
		publisher: publisher,
		channel:   channel,
		mailFrom:  mailFrom,
		mailTo:    mailTo,
		now:       time.Now,
	}
}

func (s *RedisMailService) Send(ctx context.Context, subject, message string) error {
	msg := Message{
		ID:      uuid.New(),
		From:    s.mailFrom,
		To:      s.mailTo,
		Subject: subject,
		Body:    message,
		SentAt:  s.now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode mail message: %w", err)
	}

	receivers, err := s.publisher.Publish(ctx, s.channel, payload).Result()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish mail", slog.String("channel", s.channel), slog.Any("error", err))
		return fmt.Errorf("failed to publish mail on %s: %w", s.channel, err)
	}
	if receivers == 0 {
		s.logger.WarnContext(ctx, "Mail published with no subscribers", slog.String("channel", s.channel))
	}

	s.logger.DebugContext(ctx, "Mail published",
		slog.String("id", msg.ID.String()),
		slog.String("channel", s.channel),
		slog.Int64("receivers", receivers),
	)
	return nil
}
