package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"slot_key",
	"start_time",
	"end_time",
	"capacity",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий предгенерированных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertTemplates идемпотентно материализует шаблоны слотов в строки таблицы
// Существующие строки не трогаются (ON CONFLICT DO NOTHING), поэтому job
// безопасно запускать конкурентно с самим собой и с живым трафиком: он
// только создает будущие слоты и никогда не мутирует счетчики занятости
func (r *Repository) UpsertTemplates(ctx context.Context, templates []domain.SlotTemplate) error {
	if len(templates) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("delivery_slots").
		Columns(
			"slot_date",
			"slot_key",
			"start_time",
			"end_time",
			"capacity",
			"status",
		)

	for _, template := range templates {
		insertBuilder = insertBuilder.Values(
			template.Date,
			template.Key(),
			template.Start,
			template.End,
			template.Capacity,
			domain.SlotOpen,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (slot_date, slot_key) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertTemplates - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertTemplates - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByDate получает предгенерированные слоты на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.DeliverySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("delivery_slots").
		Where(squirrel.Eq{"slot_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.DeliverySlot, 0)
	for rows.Next() {
		var slot domain.DeliverySlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.SlotDate,
			&slot.SlotKey,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
			&slot.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Update обновляет административные поля слота (вместимость, статус)
func (r *Repository) Update(ctx context.Context, date time.Time, slotKey string, capacity *int, status *domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("delivery_slots").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"slot_date": date, "slot_key": slotKey})

	if capacity != nil {
		updateBuilder = updateBuilder.Set("capacity", *capacity)
	}
	if status != nil {
		updateBuilder = updateBuilder.Set("status", *status)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeletePastDates удаляет слоты прошедших дат (очистка при предгенерации)
func (r *Repository) DeletePastDates(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("delivery_slots").
		Where(squirrel.Lt{"slot_date": before}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeletePastDates - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePastDates - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePastDates - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
