package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/segmentio/kafka-go"
)

const EventBookingRequested = "booking_requested"

type BookingEvent struct {
	Type      string        `json:"type"`
	Token     string        `json:"token"`
	Status    string        `json:"status"`
	Record    domain.Record `json:"record"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking) BookingEvent {
	return BookingEvent{
		Type:      eventType,
		Token:     b.Token,
		Status:    string(b.Status),
		Record:    b.Record,
		CreatedAt: b.CreatedAt,
	}
}

func DecodeBookingEvent(msg kafka.Message) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event at offset %d: %w", msg.Offset, err)
	}
	return event, nil
}
