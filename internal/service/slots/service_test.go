package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	slotRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/slot"
)

// fakeSlotRepository фиксирует параметры последнего обновления
type fakeSlotRepository struct {
	rows []*domain.DeliverySlot

	updatedDate     time.Time
	updatedKey      string
	updatedCapacity *int
	updatedStatus   *domain.SlotStatus
	updateErr       error
}

func (f *fakeSlotRepository) GetByDate(_ context.Context, _ time.Time) ([]*domain.DeliverySlot, error) {
	return f.rows, nil
}

func (f *fakeSlotRepository) Update(_ context.Context, date time.Time, slotKey string, capacity *int, status *domain.SlotStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedDate = date
	f.updatedKey = slotKey
	f.updatedCapacity = capacity
	f.updatedStatus = status
	return nil
}

// noopLogger заглушка логгера для тестов
type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func intPtr(i int) *int { return &i }

func statusPtr(s domain.SlotStatus) *domain.SlotStatus { return &s }

// TestUpdate тестирует административное обновление слота
func TestUpdate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 2, 18, 30, 0, 0, time.UTC)

	t.Run("updates capacity and status", func(t *testing.T) {
		repo := &fakeSlotRepository{}
		svc := NewService(repo, []int64{1}, noopLogger{})

		err := svc.Update(ctx, &UpdateSlotRequest{
			UserID:   1,
			Date:     date,
			SlotKey:  "10:00-12:00",
			Capacity: intPtr(5),
			Status:   statusPtr(domain.SlotClosed),
		})
		require.NoError(t, err)

		assert.Equal(t, domain.DateOnly(date), repo.updatedDate, "time of day is truncated")
		assert.Equal(t, "10:00-12:00", repo.updatedKey)
		require.NotNil(t, repo.updatedCapacity)
		assert.Equal(t, 5, *repo.updatedCapacity)
		require.NotNil(t, repo.updatedStatus)
		assert.Equal(t, domain.SlotClosed, *repo.updatedStatus)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		svc := NewService(&fakeSlotRepository{}, []int64{1}, noopLogger{})

		err := svc.Update(ctx, &UpdateSlotRequest{UserID: 42, Date: date, SlotKey: "10:00-12:00", Capacity: intPtr(5)})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("malformed slot key", func(t *testing.T) {
		svc := NewService(&fakeSlotRepository{}, []int64{1}, noopLogger{})

		err := svc.Update(ctx, &UpdateSlotRequest{UserID: 1, Date: date, SlotKey: "morning", Capacity: intPtr(5)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("nothing to update", func(t *testing.T) {
		svc := NewService(&fakeSlotRepository{}, []int64{1}, noopLogger{})

		err := svc.Update(ctx, &UpdateSlotRequest{UserID: 1, Date: date, SlotKey: "10:00-12:00"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("capacity out of range", func(t *testing.T) {
		svc := NewService(&fakeSlotRepository{}, []int64{1}, noopLogger{})

		err := svc.Update(ctx, &UpdateSlotRequest{UserID: 1, Date: date, SlotKey: "10:00-12:00", Capacity: intPtr(-1)})
		assert.ErrorIs(t, err, ErrInvalidInput)

		err = svc.Update(ctx, &UpdateSlotRequest{UserID: 1, Date: date, SlotKey: "10:00-12:00", Capacity: intPtr(1000)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := NewService(&fakeSlotRepository{}, []int64{1}, noopLogger{})

		err := svc.Update(ctx, &UpdateSlotRequest{UserID: 1, Date: date, SlotKey: "10:00-12:00", Status: statusPtr("paused")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing slot row", func(t *testing.T) {
		repo := &fakeSlotRepository{updateErr: slotRepo.ErrSlotNotFound}
		svc := NewService(repo, []int64{1}, noopLogger{})

		err := svc.Update(ctx, &UpdateSlotRequest{UserID: 1, Date: date, SlotKey: "10:00-12:00", Capacity: intPtr(5)})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeSlotRepository{updateErr: errors.New("connection refused")}
		svc := NewService(repo, []int64{1}, noopLogger{})

		err := svc.Update(ctx, &UpdateSlotRequest{UserID: 1, Date: date, SlotKey: "10:00-12:00", Capacity: intPtr(5)})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

// TestGetByDate тестирует чтение предгенерированных слотов
func TestGetByDate(t *testing.T) {
	repo := &fakeSlotRepository{rows: []*domain.DeliverySlot{
		{SlotKey: "10:00-12:00", Capacity: 2, Status: domain.SlotOpen},
	}}
	svc := NewService(repo, []int64{1}, noopLogger{})

	rows, err := svc.GetByDate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
