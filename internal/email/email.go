package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/Domenick1991/pestbooking/internal/kafka"
	"github.com/Domenick1991/pestbooking/internal/logging"
	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("booking event has no recipient")

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers booking notifications. Delivery is a structured log
// line; no mail transport is configured.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: logging.OrNop(log)}
}

// Compose renders the French acknowledgement for a booking request.
func Compose(event kafka.BookingEvent) (Message, error) {
	rec := event.Record
	if rec.Email == "" {
		return Message{}, ErrNoRecipient
	}

	when := rec.Date
	if d, err := calendar.ParseDate(rec.Date); err == nil {
		when = calendar.LongLabel(d)
	}

	return Message{
		To:      rec.Email,
		Subject: "Votre demande de rendez-vous a bien été reçue",
		Body: fmt.Sprintf("Bonjour %s,\n\nNous avons bien reçu votre demande d'intervention pour le %s à %s.\nRéférence : %s\n",
			rec.FirstName, when, rec.Time, event.Token),
	}, nil
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := Compose(event)
	if err != nil {
		return err
	}
	s.log.Info("sending booking notification",
		zap.String("to", msg.To),
		zap.String("type", event.Type),
		zap.String("token", event.Token),
		zap.String("subject", msg.Subject))
	return nil
}
