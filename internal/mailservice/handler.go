package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/blogapi/internal/common"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:     logger,
		maxRetries: 5,
		baseDelay:  500 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SendWelcomeEmail consumes user.created events in the background and mails each new user.
// It returns an error only if the subscription itself fails.
func (s *MailService) SendWelcomeEmail() error {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handleUserCreated(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping welcome email consumer")
				return
			}
		}
	}()

	return nil
}

// handleUserCreated acks every message once it is handled, including undeliverable ones, so a bad
// payload or a dead mail server never blocks the queue.
func (s *MailService) handleUserCreated(msg amqp.Delivery) {
	var event common.UserCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil || event.Email == "" {
		s.logger.Error("could not decode user created event", slog.String("body", string(msg.Body)))
		msg.Ack(false)
		return
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.m.send(event.Email, event, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", event.Email))
			msg.Ack(false)
			return
		}

		// exponential backoff with full jitter
		delay := time.Duration(rand.Int63n(int64(s.baseDelay)<<uint(attempt) + 1))
		s.logger.Info("delaying welcome email", slog.String("email", event.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send welcome email", slog.String("email", event.Email))
	msg.Ack(false)
}

func (s *MailService) Close() {
	s.cancel()
}
