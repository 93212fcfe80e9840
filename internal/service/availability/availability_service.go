package availability

import (
	"context"
	"time"

	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/Domenick1991/pestbooking/internal/logging"
	"github.com/Domenick1991/pestbooking/internal/metrics"
	"go.uber.org/zap"
)

type AvailabilityUseCase interface {
	Week(ctx context.Context, anchor calendar.Date) (calendar.WeekView, error)
	Check(ctx context.Context, d calendar.Date) (DayCheck, error)
	Today() calendar.Date
}

type WeekCache interface {
	GetWeek(ctx context.Context, anchor, today calendar.Date) (*calendar.WeekView, error)
	SetWeek(ctx context.Context, today calendar.Date, view calendar.WeekView) error
}

// DayCheck is the verdict for a single date.
type DayCheck struct {
	Date     calendar.Date     `json:"date"`
	Bookable bool              `json:"bookable"`
	Reasons  []calendar.Reason `json:"reasons,omitempty"`
	Covered  bool              `json:"holidays_covered"`
}

type AvailabilityService struct {
	evaluator *calendar.Evaluator
	cache     WeekCache
	loc       *time.Location
	now       func() time.Time
	log       *zap.Logger
	metrics   *metrics.BookingMetrics
}

type Option func(*AvailabilityService)

func WithCache(cache WeekCache) Option {
	return func(s *AvailabilityService) {
		s.cache = cache
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *AvailabilityService) {
		s.now = now
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *AvailabilityService) {
		s.log = logging.OrNop(log)
	}
}

func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *AvailabilityService) {
		s.metrics = m
	}
}

// NewAvailabilityService evaluates dates in loc. A nil loc means UTC.
func NewAvailabilityService(evaluator *calendar.Evaluator, loc *time.Location, opts ...Option) *AvailabilityService {
	s := &AvailabilityService{
		evaluator: evaluator,
		loc:       loc,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AvailabilityService) Today() calendar.Date {
	return calendar.Today(s.now(), s.loc)
}

// Week returns the Monday-start week containing anchor. Cache errors are
// logged and the week is evaluated directly.
func (s *AvailabilityService) Week(ctx context.Context, anchor calendar.Date) (calendar.WeekView, error) {
	if err := ctx.Err(); err != nil {
		return calendar.WeekView{}, err
	}
	today := s.Today()

	week := calendar.WeekOf(anchor)
	days := week.Days()
	if years := s.evaluator.UncoveredYears(days[:]...); len(years) > 0 {
		s.log.Warn("holiday calendar does not cover requested week",
			zap.Ints("years", years), zap.Stringer("week_start", week.Start))
	}

	if s.cache != nil {
		cached, err := s.cache.GetWeek(ctx, anchor, today)
		if err != nil {
			s.log.Warn("availability cache read failed", zap.Error(err))
		}
		if err == nil && cached != nil {
			s.metrics.ObserveWeekLookup(true)
			return *cached, nil
		}
	}
	s.metrics.ObserveWeekLookup(false)

	view := s.evaluator.WeekView(anchor, today)

	if s.cache != nil {
		if err := s.cache.SetWeek(ctx, today, view); err != nil {
			s.log.Warn("availability cache write failed", zap.Error(err))
		}
	}
	return view, nil
}

func (s *AvailabilityService) Check(ctx context.Context, d calendar.Date) (DayCheck, error) {
	if err := ctx.Err(); err != nil {
		return DayCheck{}, err
	}
	reasons := s.evaluator.Reasons(d, s.Today())
	return DayCheck{
		Date:     d,
		Bookable: len(reasons) == 0,
		Reasons:  reasons,
		Covered:  s.evaluator.Covers(d.Year),
	}, nil
}

var _ AvailabilityUseCase = (*AvailabilityService)(nil)
