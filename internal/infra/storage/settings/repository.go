package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/psqlbuilder"
)

// settingsRowID настройки хранятся единственной строкой (одна зона обслуживания)
const settingsRowID = 1

// Repository репозиторий настроек доставки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает настройки доставки
// Возвращает ErrSettingsNotFound, если настройки еще не сохранялись
func (r *Repository) Get(ctx context.Context) (*domain.DeliverySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"zip_whitelist",
		"default_capacity",
		"slot_start",
		"slot_end",
		"slot_duration_minutes",
		"cutoff_time",
		"blackout_dates",
		"slot_capacities",
		"updated_at",
	).
		From("delivery_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.DeliverySettings
	var capacitiesRaw []byte
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		pq.Array(&settings.ZipWhitelist),
		&settings.DefaultCapacity,
		&settings.SlotStart,
		&settings.SlotEnd,
		&settings.SlotDurationMinutes,
		&settings.CutoffTime,
		pq.Array(&settings.BlackoutDates),
		&capacitiesRaw,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	settings.SlotCapacities = map[string]int{}
	if len(capacitiesRaw) > 0 {
		if err := json.Unmarshal(capacitiesRaw, &settings.SlotCapacities); err != nil {
			return nil, fmt.Errorf("%w: Get - decode slot capacities: %v", ErrScanRow, err)
		}
	}
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert сохраняет настройки доставки (единственную строку)
func (r *Repository) Upsert(ctx context.Context, settings *domain.DeliverySettings) (*domain.DeliverySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	capacitiesRaw, err := json.Marshal(settings.SlotCapacities)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("delivery_settings").
		Columns(
			"id",
			"zip_whitelist",
			"default_capacity",
			"slot_start",
			"slot_end",
			"slot_duration_minutes",
			"cutoff_time",
			"blackout_dates",
			"slot_capacities",
		).
		Values(
			settingsRowID,
			pq.Array(settings.ZipWhitelist),
			settings.DefaultCapacity,
			settings.SlotStart,
			settings.SlotEnd,
			settings.SlotDurationMinutes,
			settings.CutoffTime,
			pq.Array(settings.BlackoutDates),
			capacitiesRaw,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			zip_whitelist = EXCLUDED.zip_whitelist,
			default_capacity = EXCLUDED.default_capacity,
			slot_start = EXCLUDED.slot_start,
			slot_end = EXCLUDED.slot_end,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			cutoff_time = EXCLUDED.cutoff_time,
			blackout_dates = EXCLUDED.blackout_dates,
			slot_capacities = EXCLUDED.slot_capacities,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	settings.UpdatedAt = updatedAt.Time
	return settings, nil
}
