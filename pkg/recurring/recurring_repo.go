package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/pkg/money"
)

var ErrRuleNotFound = errors.New("recurring rule not found")

type Repo interface {
	Store(ctx context.Context, userId int, rule Rule) (int, error)
	GetAll(ctx context.Context, userId int) ([]Rule, error)
	GetByUid(ctx context.Context, userId int, uid string) (Rule, error)
	Update(ctx context.Context, userId int, rule Rule) (bool, error)
	SetActive(ctx context.Context, userId int, uid string, active bool) (bool, error)
	Delete(ctx context.Context, userId int, uid string) (bool, error)
	// FindDue returns active rules across all users whose next date is on or
	// before the given date.
	FindDue(ctx context.Context, asOf time.Time) ([]Rule, error)
	// AdvanceNextDate moves a rule's next date forward only when it still
	// holds the expected value, so concurrent scheduler ticks cannot
	// materialize the same occurrence twice.
	AdvanceNextDate(ctx context.Context, ruleId int, from, to time.Time) (bool, error)
}

const ruleColumns = "id, uid, user_id, kind, amount_cents, category, description, emoji, frequency, day_of_week, day_of_month, next_date, is_active"

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRecurringRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, rule Rule) (int, error) {
	query := `INSERT INTO recurring_rules (
					uid,
					user_id,
					kind,
					amount_cents,
					category,
					description,
					emoji,
					frequency,
					day_of_week,
					day_of_month,
					next_date,
					is_active
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		rule.Uid,
		userId,
		rule.Kind,
		rule.Amount.Cents,
		rule.Category,
		rule.Description,
		rule.Emoji,
		rule.Frequency,
		rule.DayOfWeek,
		rule.DayOfMonth,
		rule.NextDate.Format("2006-01-02"),
		rule.Active,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store recurring rule: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Rule, error) {
	query := fmt.Sprintf("SELECT %s FROM recurring_rules WHERE user_id = $1 ORDER BY next_date, id", ruleColumns)
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query recurring rules: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanRules(rows)
}

func (r *RepoImpl) GetByUid(ctx context.Context, userId int, uid string) (Rule, error) {
	query := fmt.Sprintf("SELECT %s FROM recurring_rules WHERE user_id = $1 AND uid = $2", ruleColumns)
	rows, err := r.db.Query(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not query recurring rule: %w", err)
		log.Error(err)
		return Rule{}, err
	}
	defer rows.Close()

	rules, err := scanRules(rows)
	if err != nil {
		return Rule{}, err
	}
	if len(rules) == 0 {
		return Rule{}, ErrRuleNotFound
	}
	return rules[0], nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, rule Rule) (bool, error) {
	query := `UPDATE recurring_rules SET
					kind = $1,
					amount_cents = $2,
					category = $3,
					description = $4,
					emoji = $5,
					frequency = $6,
					day_of_week = $7,
					day_of_month = $8,
					next_date = $9
				WHERE user_id = $10 AND uid = $11`
	tag, err := r.db.Exec(ctx, query,
		rule.Kind,
		rule.Amount.Cents,
		rule.Category,
		rule.Description,
		rule.Emoji,
		rule.Frequency,
		rule.DayOfWeek,
		rule.DayOfMonth,
		rule.NextDate.Format("2006-01-02"),
		userId,
		rule.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update recurring rule: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) SetActive(ctx context.Context, userId int, uid string, active bool) (bool, error) {
	query := "UPDATE recurring_rules SET is_active = $1 WHERE user_id = $2 AND uid = $3"
	tag, err := r.db.Exec(ctx, query, active, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not toggle recurring rule: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	query := "DELETE FROM recurring_rules WHERE user_id = $1 AND uid = $2"
	tag, err := r.db.Exec(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete recurring rule: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) FindDue(ctx context.Context, asOf time.Time) ([]Rule, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM recurring_rules WHERE is_active AND next_date <= $1 ORDER BY next_date, id",
		ruleColumns,
	)
	rows, err := r.db.Query(ctx, query, asOf.Format("2006-01-02"))
	if err != nil {
		err := fmt.Errorf("could not query due recurring rules: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanRules(rows)
}

func (r *RepoImpl) AdvanceNextDate(ctx context.Context, ruleId int, from, to time.Time) (bool, error) {
	query := "UPDATE recurring_rules SET next_date = $1 WHERE id = $2 AND next_date = $3"
	tag, err := r.db.Exec(ctx, query, to.Format("2006-01-02"), ruleId, from.Format("2006-01-02"))
	if err != nil {
		err := fmt.Errorf("could not advance recurring rule next date: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanRules(rows pgx.Rows) ([]Rule, error) {
	var rules []Rule
	for rows.Next() {
		var rule Rule
		var amountCents int64
		var nextDate time.Time
		if err := rows.Scan(
			&rule.ID,
			&rule.Uid,
			&rule.UserId,
			&rule.Kind,
			&amountCents,
			&rule.Category,
			&rule.Description,
			&rule.Emoji,
			&rule.Frequency,
			&rule.DayOfWeek,
			&rule.DayOfMonth,
			&nextDate,
			&rule.Active,
		); err != nil {
			err := fmt.Errorf("could not scan recurring rule: %w", err)
			log.Error(err)
			return nil, err
		}
		rule.Amount = money.FromCents(amountCents)
		rule.NextDate = nextDate
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return rules, nil
}
