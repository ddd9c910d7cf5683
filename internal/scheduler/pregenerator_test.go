package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// fakeSettingsProvider источник настроек для тестов
type fakeSettingsProvider struct {
	settings *domain.DeliverySettings
}

func (f *fakeSettingsProvider) Get(_ context.Context) (*domain.DeliverySettings, error) {
	return f.settings, nil
}

// fakeSlotRepository фиксирует материализованные шаблоны и чистку
type fakeSlotRepository struct {
	upserted      []domain.SlotTemplate
	deletedBefore time.Time
}

func (f *fakeSlotRepository) UpsertTemplates(_ context.Context, templates []domain.SlotTemplate) error {
	f.upserted = templates
	return nil
}

func (f *fakeSlotRepository) DeletePastDates(_ context.Context, before time.Time) (int64, error) {
	f.deletedBefore = before
	return 0, nil
}

// fixedTimeProvider фиксированное время для детерминированных тестов
type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

// noopLogger заглушка логгера для тестов
type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// TestPregeneratorRunOnce тестирует один проход материализации слотов
func TestPregeneratorRunOnce(t *testing.T) {
	settings := &domain.DeliverySettings{
		ZipWhitelist:        []string{"10001"},
		DefaultCapacity:     2,
		SlotStart:           "10:00",
		SlotEnd:             "20:00",
		SlotDurationMinutes: 120,
		CutoffTime:          "14:00",
		BlackoutDates:       []string{"2025-06-03"},
		SlotCapacities:      map[string]int{},
	}
	repo := &fakeSlotRepository{}
	clock := &fixedTimeProvider{now: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)}

	p := NewSlotPregenerator(&fakeSettingsProvider{settings: settings}, repo, clock, 2, time.Hour, noopLogger{})
	p.runOnce(context.Background())

	// Горизонт 2 дня: 2, 3 и 4 июня, из них 3 июня попадает в blackout.
	// По 5 слотов на каждую материализованную дату
	require.Len(t, repo.upserted, 10)
	assert.Equal(t, "2025-06-02", repo.upserted[0].Date.Format(domain.DateFormat))
	assert.Equal(t, "2025-06-04", repo.upserted[5].Date.Format(domain.DateFormat))
	for _, template := range repo.upserted {
		assert.NotEqual(t, "2025-06-03", template.Date.Format(domain.DateFormat), "blackout date is not materialized")
	}

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), repo.deletedBefore, "past rows are cleaned up to today")
}
