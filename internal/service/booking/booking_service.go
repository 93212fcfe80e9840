package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/Domenick1991/pestbooking/internal/kafka"
	"github.com/Domenick1991/pestbooking/internal/logging"
	"github.com/Domenick1991/pestbooking/internal/repository"
	"github.com/Domenick1991/pestbooking/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrIncompleteRecord = errors.New("booking record is missing its schedule")

type BookingUseCase interface {
	Submit(ctx context.Context, record domain.Record) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	newToken           func() string
	log                *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = logging.OrNop(log)
	}
}

// NewBookingService builds the submission boundary. A nil producer disables
// event publishing.
func NewBookingService(
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
		newToken:     uuid.NewString,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Submit stores record as a new booking request and announces it. Publish
// failures are logged; the booking is already stored at that point.
func (s *BookingService) Submit(ctx context.Context, record domain.Record) (*domain.Booking, error) {
	if record.Date == "" || record.Time == "" {
		return nil, ErrIncompleteRecord
	}

	booking := &domain.Booking{
		Token:  s.newToken(),
		Record: record,
		Status: domain.BookingStatusRequested,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("store booking request: %w", err)
	}

	if err := s.publish(ctx, kafka.EventBookingRequested, booking); err != nil {
		s.log.Warn("failed to publish booking event",
			zap.String("token", booking.Token), zap.String("event", kafka.EventBookingRequested), zap.Error(err))
	}
	s.log.Info("booking requested",
		zap.String("token", booking.Token), zap.String("pack", record.Slug),
		zap.String("date", record.Date), zap.String("time", record.Time))
	return booking, nil
}

func (s *BookingService) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	return s.bookings.GetByToken(ctx, token)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.NewBookingEvent(eventType, booking)
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Token, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Token, event)
	}
	return nil
}

var (
	_ BookingUseCase    = (*BookingService)(nil)
	_ session.Submitter = (*BookingService)(nil)
)
