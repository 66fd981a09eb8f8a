package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
	"github.com/m04kA/CMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CMS-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий недельных расписаний профессионалов.
// Одна строка - один рабочий день недели; отсутствие строки означает выходной.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDay получает расписание профессионала на день недели
func (r *Repository) GetDay(ctx context.Context, professionalID int64, weekday time.Weekday) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_minutes", "end_minutes", "breaks").
		From("professional_schedules").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"weekday":         int(weekday),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - build select query: %v", ErrBuildQuery, err)
	}

	var (
		day       domain.DaySchedule
		breaksRaw []byte
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.Start, &day.End, &breaksRaw)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - scan schedule: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(breaksRaw, &day.Breaks); err != nil {
		return nil, fmt.Errorf("%w: GetDay - unmarshal breaks: %v", ErrScanRow, err)
	}

	return &day, nil
}

// GetWeek получает полное недельное расписание профессионала.
// Дни без строки в таблице в результат не попадают (выходные).
func (r *Repository) GetWeek(ctx context.Context, professionalID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "start_minutes", "end_minutes", "breaks").
		From("professional_schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make(domain.WeeklySchedule)

	for rows.Next() {
		var (
			weekday   int
			day       domain.DaySchedule
			breaksRaw []byte
		)

		if err := rows.Scan(&weekday, &day.Start, &day.End, &breaksRaw); err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan schedule: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(breaksRaw, &day.Breaks); err != nil {
			return nil, fmt.Errorf("%w: GetWeek - unmarshal breaks: %v", ErrScanRow, err)
		}

		week[time.Weekday(weekday)] = &day
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - iterate rows: %v", ErrScanRow, err)
	}

	return week, nil
}

// ReplaceWeek атомарно заменяет недельное расписание профессионала.
// Вызывается внутри транзакции: сначала удаляются старые строки,
// затем вставляются новые.
func (r *Repository) ReplaceWeek(ctx context.Context, professionalID int64, week domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("professional_schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute delete: %v", ErrExecQuery, err)
	}

	if len(week) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("professional_schedules").
		Columns("professional_id", "weekday", "start_minutes", "end_minutes", "breaks")

	// Обходим дни в фиксированном порядке для детерминированных запросов
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day, ok := week[weekday]
		if !ok {
			continue
		}

		breaks := day.Breaks
		if breaks == nil {
			breaks = []domain.BreakWindow{}
		}
		breaksRaw, err := json.Marshal(breaks)
		if err != nil {
			return fmt.Errorf("%w: ReplaceWeek - marshal breaks: %v", ErrBuildQuery, err)
		}

		insertBuilder = insertBuilder.Values(professionalID, int(weekday), day.Start, day.End, breaksRaw)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
