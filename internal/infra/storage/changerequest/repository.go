package changerequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки Postgres при нарушении уникального индекса
const pgUniqueViolation = "23505"

var requestColumns = []string{
	"id",
	"appointment_id",
	"reason",
	"status",
	"admin_response",
	"consumed",
	"requested_at",
	"responded_at",
}

// Repository репозиторий запросов на изменение записи
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов на изменение
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запрос на изменение.
// Частичный уникальный индекс по appointment_id среди pending-запросов
// гарантирует не более одного неразрешённого запроса на запись;
// его нарушение возвращается как ErrActiveRequestExists.
func (r *Repository) Create(ctx context.Context, req *domain.ChangeRequest) (*domain.ChangeRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("change_requests").
		Columns(
			"appointment_id",
			"reason",
			"status",
		).
		Values(
			req.AppointmentID,
			req.Reason,
			req.Status,
		).
		Suffix("RETURNING id, requested_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var requestedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&requestedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrActiveRequestExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.RequestedAt = requestedAt.Time

	return req, nil
}

// GetByID получает запрос на изменение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ChangeRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("change_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// GetPendingByAppointment возвращает неразрешённый запрос по записи, если он есть
func (r *Repository) GetPendingByAppointment(ctx context.Context, appointmentID int64) (*domain.ChangeRequest, error) {
	return r.getOneByAppointment(ctx, appointmentID, squirrel.Eq{"status": domain.RequestPending})
}

// GetConsumableByAppointment возвращает одобренный и ещё не использованный
// запрос по записи, если он есть
func (r *Repository) GetConsumableByAppointment(ctx context.Context, appointmentID int64) (*domain.ChangeRequest, error) {
	return r.getOneByAppointment(ctx, appointmentID, squirrel.And{
		squirrel.Eq{"status": domain.RequestApproved},
		squirrel.Eq{"consumed": false},
	})
}

func (r *Repository) getOneByAppointment(ctx context.Context, appointmentID int64, cond squirrel.Sqlizer) (*domain.ChangeRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("change_requests").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		Where(cond).
		OrderBy("requested_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOneByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOneByAppointment - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// ListByAppointment возвращает все запросы по записи (история)
func (r *Repository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*domain.ChangeRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("change_requests").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("requested_at DESC")

	return r.list(ctx, selectBuilder)
}

// ListByStatus возвращает запросы в указанном статусе (админский список)
func (r *Repository) ListByStatus(ctx context.Context, status domain.ChangeRequestStatus) ([]*domain.ChangeRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("change_requests").
		Where(squirrel.Eq{"status": status}).
		OrderBy("requested_at ASC")

	return r.list(ctx, selectBuilder)
}

func (r *Repository) list(ctx context.Context, selectBuilder squirrel.SelectBuilder) ([]*domain.ChangeRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.ChangeRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %w", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %w", ErrScanRow, err)
	}

	return requests, nil
}

// Resolve разрешает запрос (compare-and-swap по статусу pending).
// responded_at проставляется ровно один раз; из двух конкурентных
// разрешений выигрывает одно, проигравший получает ErrNotPending.
func (r *Repository) Resolve(ctx context.Context, id int64, status domain.ChangeRequestStatus, adminResponse *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("change_requests").
		Set("status", status).
		Set("admin_response", adminResponse).
		Set("responded_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.RequestPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

// MarkConsumed помечает одобрение использованным (compare-and-swap).
// Вызывается в той же транзакции, что и успешное редактирование записи.
func (r *Repository) MarkConsumed(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("change_requests").
		Set("consumed", true).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.RequestApproved}).
		Where(squirrel.Eq{"consumed": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkConsumed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkConsumed - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkConsumed - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotConsumable
	}

	return nil
}

// scanRequest сканирует одну строку в доменную модель
func scanRequest(scan func(dest ...interface{}) error) (*domain.ChangeRequest, error) {
	var req domain.ChangeRequest
	var requestedAt sql.NullTime

	err := scan(
		&req.ID,
		&req.AppointmentID,
		&req.Reason,
		&req.Status,
		&req.AdminResponse,
		&req.Consumed,
		&requestedAt,
		&req.RespondedAt,
	)
	if err != nil {
		return nil, err
	}

	req.RequestedAt = requestedAt.Time

	return &req, nil
}

// isUniqueViolation проверяет нарушение уникального индекса Postgres
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
