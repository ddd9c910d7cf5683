package check_zip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// fakeSettingsProvider источник настроек для тестов
type fakeSettingsProvider struct {
	settings *domain.DeliverySettings
	err      error
}

func (f *fakeSettingsProvider) Get(_ context.Context) (*domain.DeliverySettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
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

func testSettings() *domain.DeliverySettings {
	return &domain.DeliverySettings{
		ZipWhitelist:        []string{"10001"},
		DefaultCapacity:     2,
		SlotStart:           "10:00",
		SlotEnd:             "20:00",
		SlotDurationMinutes: 120,
		CutoffTime:          "14:00",
		BlackoutDates:       []string{},
		SlotCapacities:      map[string]int{},
	}
}

func newUseCase(provider *fakeSettingsProvider, now time.Time) *UseCase {
	return NewUseCase(provider, &fixedTimeProvider{now: now}, 14, noopLogger{})
}

// TestExecute тестирует проверку обслуживания ZIP-кода
func TestExecute(t *testing.T) {
	ctx := context.Background()
	beforeCutoff := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("eligible zip with first date hint", func(t *testing.T) {
		uc := newUseCase(&fakeSettingsProvider{settings: testSettings()}, beforeCutoff)

		resp, err := uc.Execute(ctx, &Request{Zip: "10001"})
		require.NoError(t, err)
		assert.True(t, resp.Eligible)
		assert.Equal(t, "10001", resp.Zip)
		require.NotNil(t, resp.FirstDate)
		assert.Equal(t, "2025-06-02", *resp.FirstDate)
	})

	t.Run("after cutoff the hint moves to tomorrow", func(t *testing.T) {
		afterCutoff := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
		uc := newUseCase(&fakeSettingsProvider{settings: testSettings()}, afterCutoff)

		resp, err := uc.Execute(ctx, &Request{Zip: "10001"})
		require.NoError(t, err)
		require.NotNil(t, resp.FirstDate)
		assert.Equal(t, "2025-06-03", *resp.FirstDate)
	})

	t.Run("raw zip is normalized before lookup", func(t *testing.T) {
		uc := newUseCase(&fakeSettingsProvider{settings: testSettings()}, beforeCutoff)

		resp, err := uc.Execute(ctx, &Request{Zip: " 100-01 "})
		require.NoError(t, err)
		assert.True(t, resp.Eligible)
		assert.Equal(t, "10001", resp.Zip)
	})

	t.Run("ineligible zip is a response, not an error", func(t *testing.T) {
		uc := newUseCase(&fakeSettingsProvider{settings: testSettings()}, beforeCutoff)

		resp, err := uc.Execute(ctx, &Request{Zip: "90210"})
		require.NoError(t, err)
		assert.False(t, resp.Eligible)
		assert.Nil(t, resp.FirstDate)
	})

	t.Run("zip without digits", func(t *testing.T) {
		uc := newUseCase(&fakeSettingsProvider{settings: testSettings()}, beforeCutoff)

		_, err := uc.Execute(ctx, &Request{Zip: "abc"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("settings failure", func(t *testing.T) {
		uc := newUseCase(&fakeSettingsProvider{err: errors.New("connection refused")}, beforeCutoff)

		_, err := uc.Execute(ctx, &Request{Zip: "10001"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
