package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/Domenick1991/pestbooking/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockWeekCache struct {
	mock.Mock
}

func (m *MockWeekCache) GetWeek(ctx context.Context, anchor, today calendar.Date) (*calendar.WeekView, error) {
	args := m.Called(ctx, anchor, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.WeekView), args.Error(1)
}

func (m *MockWeekCache) SetWeek(ctx context.Context, today calendar.Date, view calendar.WeekView) error {
	args := m.Called(ctx, today, view)
	return args.Error(0)
}

// Tuesday 6 May 2025, 10:00 in Paris.
var fixedNow = time.Date(2025, time.May, 6, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) *AvailabilityService {
	t.Helper()
	holidays, err := calendar.NewHolidaySet(map[int][]string{2025: {"2025-05-01", "2025-05-08"}})
	require.NoError(t, err)
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewAvailabilityService(calendar.NewEvaluator(holidays), paris, opts...)
}

func TestAvailabilityService_Week_CacheMiss(t *testing.T) {
	mockCache := &MockWeekCache{}
	reg := prometheus.NewRegistry()
	m := metrics.NewBookingMetrics(reg)
	service := newTestService(t, WithCache(mockCache), WithMetrics(m))

	ctx := context.Background()
	anchor := calendar.NewDate(2025, time.May, 7)
	today := calendar.NewDate(2025, time.May, 6)

	mockCache.On("GetWeek", ctx, anchor, today).Return(nil, nil)
	mockCache.On("SetWeek", ctx, today, mock.AnythingOfType("calendar.WeekView")).Return(nil)

	view, err := service.Week(ctx, anchor)

	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.May, 5), view.Start)
	assert.Equal(t, "mai 2025", view.Label)
	statuses := make([]string, 0, 7)
	for _, d := range view.Days {
		statuses = append(statuses, d.Status)
	}
	assert.Equal(t, []string{"past", "bookable", "bookable", "holiday", "bookable", "weekend", "weekend"}, statuses)
	count, err := testutil.GatherAndCount(reg, "pestbooking_availability_week_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	mockCache.AssertExpectations(t)
}

func TestAvailabilityService_Week_CacheHit(t *testing.T) {
	mockCache := &MockWeekCache{}
	service := newTestService(t, WithCache(mockCache))

	ctx := context.Background()
	anchor := calendar.NewDate(2025, time.May, 7)
	cached := &calendar.WeekView{Anchor: anchor, Label: "cached"}

	mockCache.On("GetWeek", ctx, anchor, calendar.NewDate(2025, time.May, 6)).Return(cached, nil)

	view, err := service.Week(ctx, anchor)

	require.NoError(t, err)
	assert.Equal(t, "cached", view.Label)
	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "SetWeek", mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailabilityService_Week_CacheErrorsIgnored(t *testing.T) {
	mockCache := &MockWeekCache{}
	service := newTestService(t, WithCache(mockCache))

	ctx := context.Background()
	anchor := calendar.NewDate(2025, time.May, 7)

	mockCache.On("GetWeek", ctx, anchor, mock.Anything).Return(nil, errors.New("redis down"))
	mockCache.On("SetWeek", ctx, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	view, err := service.Week(ctx, anchor)

	require.NoError(t, err)
	assert.Len(t, view.Days, 7)
	mockCache.AssertExpectations(t)
}

func TestAvailabilityService_Week_WarnsOnUncoveredYear(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	service := newTestService(t, WithLogger(zap.New(core)))

	// Week of Monday 29 December 2025 runs into 2026.
	view, err := service.Week(context.Background(), calendar.NewDate(2025, time.December, 31))

	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2026, time.January, 1), view.Days[3].Date)
	assert.True(t, view.Days[3].Bookable, "uncovered years only apply the past and weekend rules")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "holiday calendar does not cover requested week", entry.Message)
	assert.Equal(t, []any{2026}, entry.ContextMap()["years"])
}

func TestAvailabilityService_Week_WarnsOnUncoveredYearFromCache(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mockCache := &MockWeekCache{}
	service := newTestService(t, WithCache(mockCache), WithLogger(zap.New(core)))

	ctx := context.Background()
	anchor := calendar.NewDate(2026, time.March, 4)
	cached := &calendar.WeekView{Anchor: anchor, Label: "cached"}
	mockCache.On("GetWeek", ctx, anchor, calendar.NewDate(2025, time.May, 6)).Return(cached, nil)

	view, err := service.Week(ctx, anchor)

	require.NoError(t, err)
	assert.Equal(t, "cached", view.Label)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "holiday calendar does not cover requested week", logs.All()[0].Message)
	assert.Equal(t, []any{2026}, logs.All()[0].ContextMap()["years"])
	mockCache.AssertExpectations(t)
}

func TestAvailabilityService_Check(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	res, err := service.Check(ctx, calendar.NewDate(2025, time.May, 8))
	require.NoError(t, err)
	assert.False(t, res.Bookable)
	assert.Equal(t, []calendar.Reason{calendar.ReasonHoliday}, res.Reasons)
	assert.True(t, res.Covered)

	res, err = service.Check(ctx, calendar.NewDate(2026, time.May, 8))
	require.NoError(t, err)
	assert.True(t, res.Bookable)
	assert.False(t, res.Covered)
}

func TestAvailabilityService_CanceledContext(t *testing.T) {
	service := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Week(ctx, calendar.NewDate(2025, time.May, 7))
	assert.ErrorIs(t, err, context.Canceled)
}
