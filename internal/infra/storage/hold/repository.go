package hold

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

var holdColumns = []string{
	"id",
	"slot_date",
	"slot_key",
	"token",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий временных удержаний слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория удержаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет удержание для токена
// На токен приходится не больше одного удержания (UNIQUE(token)):
// выбор другого слота перезаписывает прежнее удержание, повторный выбор
// того же слота продлевает expires_at
func (r *Repository) Upsert(ctx context.Context, hold *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("delivery_holds").
		Columns(
			"slot_date",
			"slot_key",
			"token",
			"expires_at",
		).
		Values(
			hold.SlotDate,
			hold.SlotKey,
			hold.Token,
			hold.ExpiresAt,
		).
		Suffix(`ON CONFLICT (token) DO UPDATE SET
			slot_date = EXCLUDED.slot_date,
			slot_key = EXCLUDED.slot_key,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hold.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	hold.CreatedAt = createdAt.Time
	hold.UpdatedAt = updatedAt.Time

	return hold, nil
}

// GetByToken получает удержание по токену
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("delivery_holds").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	var hold domain.Hold
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hold.ID,
		&hold.SlotDate,
		&hold.SlotKey,
		&hold.Token,
		&hold.ExpiresAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan hold: %v", ErrScanRow, err)
	}

	hold.CreatedAt = createdAt.Time
	hold.UpdatedAt = updatedAt.Time

	return &hold, nil
}

// DeleteByToken удаляет удержание токена
// Идемпотентно: отсутствие удержания не является ошибкой
func (r *Repository) DeleteByToken(ctx context.Context, token string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("delivery_holds").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByToken - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByToken - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// GetActiveByDate получает неистекшие удержания на дату
// Внутри транзакции запрос блокирует строки (FOR UPDATE), это часть
// дисциплины проверки вместимости: конкурент на тот же слот дождется фиксации
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holdColumns...).
		From("delivery_holds").
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]*domain.Hold, 0)
	for rows.Next() {
		var hold domain.Hold
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&hold.ID,
			&hold.SlotDate,
			&hold.SlotKey,
			&hold.Token,
			&hold.ExpiresAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByDate - scan row: %v", ErrScanRow, err)
		}

		hold.CreatedAt = createdAt.Time
		hold.UpdatedAt = updatedAt.Time

		holds = append(holds, &hold)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

// PurgeExpired удаляет истекшие удержания
// Вызывается как побочный эффект чтения доступности и периодическим sweeper'ом
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("delivery_holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return purged, nil
}
