package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/reservation"
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
	holds   []*domain.Hold
	deleted []string
}

func (f *fakeHoldRepository) GetActiveByDate(_ context.Context, date time.Time, now time.Time) ([]*domain.Hold, error) {
	result := make([]*domain.Hold, 0)
	for _, h := range f.holds {
		if domain.IsSameDay(h.SlotDate, date) && !h.IsExpired(now) {
			result = append(result, h)
		}
	}
	return result, nil
}

func (f *fakeHoldRepository) DeleteByToken(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	kept := f.holds[:0]
	for _, h := range f.holds {
		if h.Token != token {
			kept = append(kept, h)
		}
	}
	f.holds = kept
	return nil
}

// fakeReservationRepository резервации в памяти с уникальностью по заказу
type fakeReservationRepository struct {
	reservations []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepository) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.OrderID == reservation.OrderID {
			return nil, reservationRepo.ErrDuplicateOrder
		}
	}
	f.nextID++
	reservation.ID = f.nextID
	f.reservations = append(f.reservations, reservation)
	return reservation, nil
}

func (f *fakeReservationRepository) GetByOrderID(_ context.Context, orderID int64) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.OrderID == orderID {
			return r, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
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
// Время: 2 июня 2025, 09:00 UTC, до отсечки 14:00
func newFixture() (*UseCase, *fixture) {
	f := &fixture{
		settings:     &fakeSettingsProvider{settings: testSettings()},
		slots:        &fakeSlotRepository{rows: map[string][]*domain.DeliverySlot{}},
		holds:        &fakeHoldRepository{},
		reservations: &fakeReservationRepository{},
		clock:        &fixedTimeProvider{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
	}
	uc := NewUseCase(f.settings, f.slots, f.holds, f.reservations,
		fakeTransactionManager{}, f.clock, 14, noopLogger{})
	return uc, f
}

func validRequest() *Request {
	return &Request{
		OrderID:   500,
		Zip:       "10001",
		SlotValue: "2025-06-02|10:00-12:00",
		Token:     "checkout-token",
	}
}

// TestExecuteBindsOrder тестирует успешную привязку слота к заказу
func TestExecuteBindsOrder(t *testing.T) {
	uc, f := newFixture()
	f.holds.holds = []*domain.Hold{
		{SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00",
			Token: "checkout-token", ExpiresAt: f.clock.now.Add(10 * time.Minute)},
	}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ReservationID)
	assert.Equal(t, int64(500), resp.OrderID)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "10:00-12:00", resp.SlotKey)
	assert.Equal(t, string(domain.ReservationReserved), resp.Status)
	assert.Equal(t, "Delivery on Monday, June 2 between 10:00 AM and 12:00 PM", resp.DisplayLabel)

	require.Len(t, resp.Metadata, 5)
	assert.Equal(t, "2025-06-02|10:00-12:00", resp.Metadata[domain.MetaSlotKey])
	assert.Equal(t, "2025-06-02", resp.Metadata[domain.MetaDate])
	assert.Equal(t, "10:00-12:00", resp.Metadata[domain.MetaSlot])
	assert.Equal(t, resp.DisplayLabel, resp.Metadata[domain.MetaDisplay])
	assert.Equal(t, "10001", resp.Metadata[domain.MetaZip])

	assert.Equal(t, []string{"checkout-token"}, f.holds.deleted, "hold is released after binding")
}

// TestExecuteWithoutHold тестирует привязку без предварительного удержания
func TestExecuteWithoutHold(t *testing.T) {
	uc, f := newFixture()
	req := validRequest()
	req.Token = ""

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.OrderID)
	assert.Empty(t, f.holds.deleted)
}

// TestExecuteIdempotency тестирует идемпотентность по заказу
func TestExecuteIdempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated request returns the existing reservation", func(t *testing.T) {
		uc, f := newFixture()

		first, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		second, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		assert.Equal(t, first.ReservationID, second.ReservationID)
		assert.Len(t, f.reservations.reservations, 1)
	})
}

// TestExecuteDuplicateOrderRace тестирует гонку конкурентной привязки заказа
func TestExecuteDuplicateOrderRace(t *testing.T) {
	_, f := newFixture()

	winner := &domain.Reservation{
		ID:       7,
		OrderID:  500,
		SlotDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		SlotKey:  "12:00-14:00",
		Status:   domain.ReservationReserved,
	}

	raceRepo := &raceReservationRepository{inner: f.reservations, winner: winner}
	uc := NewUseCase(f.settings, f.slots, f.holds, raceRepo,
		fakeTransactionManager{}, f.clock, 14, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ReservationID)
	assert.Equal(t, "12:00-14:00", resp.SlotKey)
}

// raceReservationRepository имитирует гонку: пре-чек не видит резервацию,
// вставка падает дубликатом, повторный GetByOrderID возвращает победителя
type raceReservationRepository struct {
	inner  *fakeReservationRepository
	winner *domain.Reservation

	getCalls int
}

func (r *raceReservationRepository) Create(_ context.Context, _ *domain.Reservation) (*domain.Reservation, error) {
	return nil, reservationRepo.ErrDuplicateOrder
}

func (r *raceReservationRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Reservation, error) {
	r.getCalls++
	if r.getCalls == 1 {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r.winner, nil
}

func (r *raceReservationRepository) GetByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Reservation, error) {
	return r.inner.GetByDate(ctx, date, includeInactive)
}

// TestExecuteCapacity тестирует повторную проверку занятости при привязке
func TestExecuteCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("full slot rejects the binding", func(t *testing.T) {
		uc, f := newFixture()
		f.reservations.reservations = []*domain.Reservation{
			{ID: 1, OrderID: 1, SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00", Status: domain.ReservationReserved},
			{ID: 2, OrderID: 2, SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00", Status: domain.ReservationConfirmed},
		}

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("own hold does not count against the binding", func(t *testing.T) {
		uc, f := newFixture()
		f.settings.settings.DefaultCapacity = 1
		f.holds.holds = []*domain.Hold{
			{SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00",
				Token: "checkout-token", ExpiresAt: f.clock.now.Add(10 * time.Minute)},
		}

		_, err := uc.Execute(ctx, validRequest())
		assert.NoError(t, err, "the hold being converted must not block its own conversion")
	})

	t.Run("foreign hold counts toward usage", func(t *testing.T) {
		uc, f := newFixture()
		f.settings.settings.DefaultCapacity = 1
		f.holds.holds = []*domain.Hold{
			{SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00",
				Token: "somebody-else", ExpiresAt: f.clock.now.Add(10 * time.Minute)},
		}

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("closed slot row rejects the binding", func(t *testing.T) {
		uc, f := newFixture()
		f.slots.rows["2025-06-02"] = []*domain.DeliverySlot{
			{SlotDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), SlotKey: "10:00-12:00", Capacity: 2, Status: domain.SlotClosed},
		}

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})
}

// TestExecuteValidation тестирует валидацию запроса
func TestExecuteValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{name: "missing order id", mutate: func(r *Request) { r.OrderID = 0 }, wantErr: ErrOrderRequired},
		{name: "missing zip", mutate: func(r *Request) { r.Zip = "" }, wantErr: ErrZipRequired},
		{name: "missing slot", mutate: func(r *Request) { r.SlotValue = "" }, wantErr: ErrSlotRequired},
		{name: "malformed slot", mutate: func(r *Request) { r.SlotValue = "noon-ish" }, wantErr: ErrMalformedSlot},
		{name: "zip outside whitelist", mutate: func(r *Request) { r.Zip = "90210" }, wantErr: ErrZipNotEligible},
		{name: "past date", mutate: func(r *Request) { r.SlotValue = "2025-06-01|10:00-12:00" }, wantErr: ErrDateUnavailable},
		{name: "beyond horizon", mutate: func(r *Request) { r.SlotValue = "2025-06-20|10:00-12:00" }, wantErr: ErrDateUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
