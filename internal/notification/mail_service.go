package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/FACorreiaa/go-cityinfo-api/config"
)

// MailService delivers a notification mail. Callers treat delivery as
// fire-and-forget: an error is logged and never fails the request.
type MailService interface {
	Send(ctx context.Context, subject, message string) error
}

// NewMailService builds the mail service selected by cfg.Mail.Driver. The
// returned close function releases the driver's connections.
func NewMailService(cfg *config.Config, logger *slog.Logger) (MailService, func() error, error) {
	switch cfg.Mail.Driver {
	case config.MailDriverLocal:
		return NewLocalMailService(cfg.Mail.MailFrom, cfg.Mail.MailTo, logger), func() error { return nil }, nil
	case config.MailDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Mail.Redis.Addr,
			Password: cfg.Mail.Redis.Password,
			DB:       cfg.Mail.Redis.DB,
		})
		svc := NewRedisMailService(client, cfg.Mail.Redis.Channel, cfg.Mail.MailFrom, cfg.Mail.MailTo, logger)
		return svc, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown mail driver %q", cfg.Mail.Driver)
	}
}
