package limit

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/period"
)

var ErrLimitNotFound = errors.New("budget limit not found")
var ErrDuplicateCategory = errors.New("a limit for this category already exists")

type Repo interface {
	Store(ctx context.Context, userId int, limit BudgetLimit) (int, error)
	GetAll(ctx context.Context, userId int) ([]BudgetLimit, error)
	GetByUid(ctx context.Context, userId int, uid string) (BudgetLimit, error)
	Update(ctx context.Context, userId int, limit BudgetLimit) (bool, error)
	SetActive(ctx context.Context, userId int, uid string, active bool) (bool, error)
	Delete(ctx context.Context, userId int, uid string) (bool, error)
}

const limitColumns = "id, uid, category, cap_cents, period, alert_threshold, is_active"

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewLimitRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, limit BudgetLimit) (int, error) {
	query := `INSERT INTO budget_limits (
					uid,
					user_id,
					category,
					cap_cents,
					period,
					alert_threshold,
					is_active
				) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		limit.Uid,
		userId,
		limit.Category,
		limit.CapAmount.Cents,
		limit.Period,
		limit.AlertThresholdPercent,
		limit.Active,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateCategory
		}
		err := fmt.Errorf("could not store budget limit: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]BudgetLimit, error) {
	query := fmt.Sprintf("SELECT %s FROM budget_limits WHERE user_id = $1 ORDER BY category", limitColumns)
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query budget limits: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanLimits(rows)
}

func (r *RepoImpl) GetByUid(ctx context.Context, userId int, uid string) (BudgetLimit, error) {
	query := fmt.Sprintf("SELECT %s FROM budget_limits WHERE user_id = $1 AND uid = $2", limitColumns)
	rows, err := r.db.Query(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not query budget limit: %w", err)
		log.Error(err)
		return BudgetLimit{}, err
	}
	defer rows.Close()

	limits, err := scanLimits(rows)
	if err != nil {
		return BudgetLimit{}, err
	}
	if len(limits) == 0 {
		return BudgetLimit{}, ErrLimitNotFound
	}
	return limits[0], nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, limit BudgetLimit) (bool, error) {
	query := `UPDATE budget_limits SET
					category = $1,
					cap_cents = $2,
					period = $3,
					alert_threshold = $4
				WHERE user_id = $5 AND uid = $6`
	tag, err := r.db.Exec(ctx, query,
		limit.Category,
		limit.CapAmount.Cents,
		limit.Period,
		limit.AlertThresholdPercent,
		userId,
		limit.Uid,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateCategory
		}
		err := fmt.Errorf("could not update budget limit: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) SetActive(ctx context.Context, userId int, uid string, active bool) (bool, error) {
	query := "UPDATE budget_limits SET is_active = $1 WHERE user_id = $2 AND uid = $3"
	tag, err := r.db.Exec(ctx, query, active, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not toggle budget limit: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	query := "DELETE FROM budget_limits WHERE user_id = $1 AND uid = $2"
	tag, err := r.db.Exec(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete budget limit: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanLimits(rows pgx.Rows) ([]BudgetLimit, error) {
	var limits []BudgetLimit
	for rows.Next() {
		var limit BudgetLimit
		var capCents int64
		var p string
		if err := rows.Scan(
			&limit.ID,
			&limit.Uid,
			&limit.Category,
			&capCents,
			&p,
			&limit.AlertThresholdPercent,
			&limit.Active,
		); err != nil {
			err := fmt.Errorf("could not scan budget limit: %w", err)
			log.Error(err)
			return nil, err
		}
		limit.CapAmount = money.FromCents(capCents)
		limit.Period = period.Period(p)
		limits = append(limits, limit)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return limits, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
