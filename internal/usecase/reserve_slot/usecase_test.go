package reserve_slot

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

// fakeSlotRepository предгенерированные строки слотов по дате
type fakeSlotRepository struct {
	rows map[string][]*domain.DeliverySlot
}

func (f *fakeSlotRepository) GetByDate(_ context.Context, date time.Time) ([]*domain.DeliverySlot, error) {
	return f.rows[date.Format(domain.DateFormat)], nil
}

// fakeHoldRepository удержания в памяти с учетом вызовов DeleteByToken
type fakeHoldRepository struct {
	byToken map[string]*domain.Hold
	deleted []string
}

func newFakeHoldRepository() *fakeHoldRepository {
	return &fakeHoldRepository{byToken: make(map[string]*domain.Hold)}
}

func (f *fakeHoldRepository) Upsert(_ context.Context, hold *domain.Hold) (*domain.Hold, error) {
	f.byToken[hold.Token] = hold
	return hold, nil
}

func (f *fakeHoldRepository) GetActiveByDate(_ context.Context, date time.Time, now time.Time) ([]*domain.Hold, error) {
	result := make([]*domain.Hold, 0)
	for _, h := range f.byToken {
		if domain.IsSameDay(h.SlotDate, date) && !h.IsExpired(now) {
			result = append(result, h)
		}
	}
	return result, nil
}

func (f *fakeHoldRepository) DeleteByToken(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	delete(f.byToken, token)
	return nil
}

func (f *fakeHoldRepository) PurgeExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// fakeReservationRepository резервации в памяти
type fakeReservationRepository struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepository) GetByDate(_ context.Context, date time.Time, includeInactive bool) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if !domain.IsSameDay(r.SlotDate, date) {
			continue
		}
		if !includeInactive && r.IsCancelled() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// fakeTransactionManager выполняет колбэк без реальной транзакции
type fakeTransactionManager struct{}

func (fakeTransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type fixture struct {
	settings     *fakeSettingsProvider
	slots        *fakeSlotRepository
	holds        *fakeHoldRepository
	reservations *fakeReservationRepository
	clock        *fixedTimeProvider
}

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

// newFixture собирает use case с дефолтными фейками
// Время: 2 июня 2025, 09:00 UTC, до отсечки 14:00. TTL 20 минут
func newFixture() (*UseCase, *fixture) {
	f := &fixture{
		settings:     &fakeSettingsProvider{settings: testSettings()},
		slots:        &fakeSlotRepository{rows: map[string][]*domain.DeliverySlot{}},
		holds:        newFakeHoldRepository(),
		reservations: &fakeReservationRepository{},
		clock:        &fixedTimeProvider{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
	}
	uc := NewUseCase(f.settings, f.slots, f.holds, f.reservations,
		fakeTransactionManager{}, f.clock, 14, 20*time.Minute, noopLogger{})
	return uc, f
}

// TestExecuteCreatesHold тестирует успешное удержание слота
func TestExecuteCreatesHold(t *testing.T) {
	ctx := context.Background()
	uc, f := newFixture()

	resp, err := uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token, "server generates a token when none supplied")
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "10:00-12:00", resp.SlotKey)
	assert.Equal(t, "2025-06-02|10:00-12:00", resp.SlotValue)
	assert.Equal(t, "10:00 AM - 12:00 PM", resp.Label)
	assert.Equal(t, f.clock.now.Add(20*time.Minute), resp.ExpiresAt)

	hold, ok := f.holds.byToken[resp.Token]
	require.True(t, ok)
	assert.Equal(t, "10:00-12:00", hold.SlotKey)
	assert.Equal(t, resp.ExpiresAt, hold.ExpiresAt)
}

// TestExecuteReselection тестирует смену слота тем же токеном
func TestExecuteReselection(t *testing.T) {
	ctx := context.Background()
	uc, f := newFixture()

	first, err := uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00"})
	require.NoError(t, err)

	second, err := uc.Execute(ctx, &Request{
		Zip:       "10001",
		SlotValue: "2025-06-02|12:00-14:00",
		Token:     first.Token,
	})
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token, "token is kept across reselection")
	require.Len(t, f.holds.byToken, 1, "a token owns at most one hold")
	assert.Equal(t, "12:00-14:00", f.holds.byToken[first.Token].SlotKey)
}

// TestExecuteNoOversell тестирует защиту от перепродажи последнего места
func TestExecuteNoOversell(t *testing.T) {
	ctx := context.Background()

	t.Run("second token is rejected on the last spot", func(t *testing.T) {
		uc, f := newFixture()
		f.settings.settings.DefaultCapacity = 1

		_, err := uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00", Token: "first"})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00", Token: "second"})
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("own hold does not block refreshing the same slot", func(t *testing.T) {
		uc, f := newFixture()
		f.settings.settings.DefaultCapacity = 1

		_, err := uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00", Token: "mine"})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00", Token: "mine"})
		assert.NoError(t, err, "refreshing an own hold is not an oversell")
	})

	t.Run("active reservations count toward usage", func(t *testing.T) {
		uc, f := newFixture()
		f.reservations.reservations = []*domain.Reservation{
			{SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00", Status: domain.ReservationReserved},
			{SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00", Status: domain.ReservationConfirmed},
		}

		_, err := uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00"})
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("closed slot row rejects the hold", func(t *testing.T) {
		uc, f := newFixture()
		f.slots.rows["2025-06-02"] = []*domain.DeliverySlot{
			{SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00", Capacity: 2, Status: domain.SlotClosed},
		}

		_, err := uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00"})
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})
}

// TestExecuteValidation тестирует отказы валидации и снятие прежнего удержания
func TestExecuteValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "empty zip",
			req:     &Request{SlotValue: "2025-06-02|10:00-12:00"},
			wantErr: ErrZipRequired,
		},
		{
			name:    "zip without digits",
			req:     &Request{Zip: "abc", SlotValue: "2025-06-02|10:00-12:00"},
			wantErr: ErrZipRequired,
		},
		{
			name:    "empty slot value",
			req:     &Request{Zip: "10001"},
			wantErr: ErrSlotRequired,
		},
		{
			name:    "malformed slot value",
			req:     &Request{Zip: "10001", SlotValue: "tomorrow-morning"},
			wantErr: ErrMalformedSlot,
		},
		{
			name:    "zip outside whitelist",
			req:     &Request{Zip: "90210", SlotValue: "2025-06-02|10:00-12:00"},
			wantErr: ErrZipNotEligible,
		},
		{
			name:    "date in the past",
			req:     &Request{Zip: "10001", SlotValue: "2025-06-01|10:00-12:00"},
			wantErr: ErrDateUnavailable,
		},
		{
			name:    "date beyond horizon",
			req:     &Request{Zip: "10001", SlotValue: "2025-06-20|10:00-12:00"},
			wantErr: ErrDateUnavailable,
		},
		{
			name:    "nonexistent slot key",
			req:     &Request{Zip: "10001", SlotValue: "2025-06-02|11:00-13:00"},
			wantErr: ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newFixture()

			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("rejected reselection releases the previous hold", func(t *testing.T) {
		uc, f := newFixture()

		first, err := uc.Execute(ctx, &Request{Zip: "10001", SlotValue: "2025-06-02|10:00-12:00"})
		require.NoError(t, err)

		// Попытка перевыбора на blackout-дату отклоняется
		f.settings.settings.BlackoutDates = []string{"2025-06-05"}
		_, err = uc.Execute(ctx, &Request{
			Zip:       "10001",
			SlotValue: "2025-06-05|10:00-12:00",
			Token:     first.Token,
		})
		require.ErrorIs(t, err, ErrDateUnavailable)

		assert.Contains(t, f.holds.deleted, first.Token, "rejected choice must not keep holding a spot")
		assert.Empty(t, f.holds.byToken)
	})
}

// TestExecuteBlackoutDate тестирует отказ на blackout-дату
func TestExecuteBlackoutDate(t *testing.T) {
	uc, f := newFixture()
	f.settings.settings.BlackoutDates = []string{"2025-06-03"}

	_, err := uc.Execute(context.Background(), &Request{Zip: "10001", SlotValue: "2025-06-03|10:00-12:00"})
	assert.ErrorIs(t, err, ErrDateUnavailable)
}
