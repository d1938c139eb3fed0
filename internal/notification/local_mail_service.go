package notification

import (
	"context"
	"log/slog"
)

var _ MailService = (*LocalMailService)(nil)

// LocalMailService writes mails to the log instead of sending them.
type LocalMailService struct {
	logger   *slog.Logger
	mailFrom string
	mailTo   string
}

func NewLocalMailService(mailFrom, mailTo string, logger *slog.Logger) *LocalMailService {
	return &LocalMailService{
		logger:   logger.With(slog.String("component", "LocalMailService")),
		mailFrom: mailFrom,
		mailTo:   mailTo,
	}
}

func (s *LocalMailService) Send(ctx context.Context, subject, message string) error {
	s.logger.InfoContext(ctx, "Mail sent",
		slog.String("from", s.mailFrom),
		slog.String("to", s.mailTo),
		slog.String("subject", subject),
		slog.String("message", message),
	)
	return nil
}
