package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-DeliverySlotService/internal/service/settings/models"
)

// fakeSettingsRepository репозиторий настроек в памяти для тестов
type fakeSettingsRepository struct {
	stored *domain.DeliverySettings
	getErr error
	upErr  error
}

func (f *fakeSettingsRepository) Get(_ context.Context) (*domain.DeliverySettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.stored, nil
}

func (f *fakeSettingsRepository) Upsert(_ context.Context, settings *domain.DeliverySettings) (*domain.DeliverySettings, error) {
	if f.upErr != nil {
		return nil, f.upErr
	}
	f.stored = settings
	return settings, nil
}

// noopLogger заглушка логгера для тестов
type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeSettingsRepository) *Service {
	return NewService(repo, []int64{1}, noopLogger{})
}

func strPtr(s string) *string                 { return &s }
func intPtr(i int) *int                       { return &i }
func slicePtr(s []string) *[]string           { return &s }
func mapPtr(m map[string]int) *map[string]int { return &m }

// TestGet тестирует чтение настроек с fallback на дефолты
func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to defaults when nothing persisted", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		settings, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, settings.ZipWhitelist)
		assert.Equal(t, domain.DefaultSlotCapacity, settings.DefaultCapacity)
	})

	t.Run("returns persisted settings", func(t *testing.T) {
		stored := domain.DefaultSettings()
		stored.ZipWhitelist = []string{"10001"}
		svc := newTestService(&fakeSettingsRepository{stored: stored})

		settings, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"10001"}, settings.ZipWhitelist)
	})

	t.Run("wraps repository failure", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{getErr: errors.New("connection refused")})

		_, err := svc.Get(ctx)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

// TestUpdateAccess тестирует проверку прав администратора
func TestUpdateAccess(t *testing.T) {
	svc := newTestService(&fakeSettingsRepository{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// TestUpdateSanitization тестирует тихую санитизацию каждого поля
func TestUpdateSanitization(t *testing.T) {
	ctx := context.Background()

	t.Run("zip whitelist is normalized and deduplicated", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			UserID:       1,
			ZipWhitelist: slicePtr([]string{"10001", " 100-01 ", "123", "abc", "90210"}),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"10001", "00123", "90210"}, updated.ZipWhitelist)
	})

	t.Run("default capacity is clamped into range", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{UserID: 1, DefaultCapacity: intPtr(-5)})
		require.NoError(t, err)
		assert.Equal(t, domain.MinSlotCapacity, updated.DefaultCapacity)

		updated, err = svc.Update(ctx, &models.UpdateSettingsRequest{UserID: 1, DefaultCapacity: intPtr(10000)})
		require.NoError(t, err)
		assert.Equal(t, domain.MaxSlotCapacity, updated.DefaultCapacity)
	})

	t.Run("invalid times keep previous values", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			UserID:     1,
			SlotStart:  strPtr("9am"),
			CutoffTime: strPtr("25:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSlotStart, updated.SlotStart.String())
		assert.Equal(t, domain.DefaultCutoffTime, updated.CutoffTime.String())
	})

	t.Run("inverted window is rejected as a pair", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			UserID:    1,
			SlotStart: strPtr("21:00"),
			SlotEnd:   strPtr("09:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSlotStart, updated.SlotStart.String())
		assert.Equal(t, domain.DefaultSlotEnd, updated.SlotEnd.String())
	})

	t.Run("valid window is applied together", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			UserID:    1,
			SlotStart: strPtr("08:00"),
			SlotEnd:   strPtr("18:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, "08:00", updated.SlotStart.String())
		assert.Equal(t, "18:00", updated.SlotEnd.String())
	})

	t.Run("out of range duration is ignored", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{UserID: 1, SlotDurationMinutes: intPtr(5)})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSlotDurationMinutes, updated.SlotDurationMinutes)
	})

	t.Run("blackout dates are filtered and deduplicated", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			UserID:        1,
			BlackoutDates: slicePtr([]string{"2025-07-04", "not-a-date", "2025-07-04", "2025-12-25"}),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-07-04", "2025-12-25"}, updated.BlackoutDates)
	})

	t.Run("slot capacities keep only canonical keys", func(t *testing.T) {
		svc := newTestService(&fakeSettingsRepository{})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			UserID: 1,
			SlotCapacities: mapPtr(map[string]int{
				"10:00-12:00": 5,
				"12:00-14:00": 0, // явный ноль допустим
				"lunch":       3,
				"14:00-16:00": -1,
			}),
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"10:00-12:00": 5, "12:00-14:00": 0}, updated.SlotCapacities)
	})

	t.Run("nil fields leave settings untouched", func(t *testing.T) {
		stored := domain.DefaultSettings()
		stored.ZipWhitelist = []string{"10001"}
		stored.DefaultCapacity = 7
		svc := newTestService(&fakeSettingsRepository{stored: stored})

		updated, err := svc.Update(ctx, &models.UpdateSettingsRequest{UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"10001"}, updated.ZipWhitelist)
		assert.Equal(t, 7, updated.DefaultCapacity)
	})
}

// TestUpdateRepositoryFailure тестирует проброс ошибки сохранения
func TestUpdateRepositoryFailure(t *testing.T) {
	svc := newTestService(&fakeSettingsRepository{upErr: errors.New("deadlock detected")})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
