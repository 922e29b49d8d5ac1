package transaction

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

var ErrTransactionNotFound = errors.New("transaction not found")

type Repo interface {
	Store(ctx context.Context, userId int, tx Transaction) (int, error)
	GetAll(ctx context.Context, userId int) ([]Transaction, error)
	GetByUid(ctx context.Context, userId int, uid string) (Transaction, error)
	FindByDateRange(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error)
	Update(ctx context.Context, userId int, tx Transaction) (bool, error)
	Delete(ctx context.Context, userId int, uid string) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, tx Transaction) (int, error) {
	query := `INSERT INTO transactions (
					uid,
					user_id,
					kind,
					amount_cents,
					category,
					description,
					emoji,
					date,
					origin_rule_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var originRuleId any
	if tx.OriginRuleId != 0 {
		originRuleId = tx.OriginRuleId
	}

	var id int
	err := r.db.QueryRow(ctx, query,
		tx.Uid,
		userId,
		tx.Kind,
		tx.Amount.Cents,
		tx.Category,
		tx.Description,
		tx.Emoji,
		tx.Date.Format("2006-01-02"),
		originRuleId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Transaction, error) {
	query := `SELECT id, uid, kind, amount_cents, category, description, emoji, date, origin_rule_id
				FROM transactions WHERE user_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *RepoImpl) GetByUid(ctx context.Context, userId int, uid string) (Transaction, error) {
	query := `SELECT id, uid, kind, amount_cents, category, description, emoji, date, origin_rule_id
				FROM transactions WHERE user_id = $1 AND uid = $2`
	rows, err := r.db.Query(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not query transaction: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return Transaction{}, err
	}
	if len(transactions) == 0 {
		return Transaction{}, ErrTransactionNotFound
	}
	return transactions[0], nil
}

func (r *RepoImpl) FindByDateRange(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error) {
	query := `SELECT id, uid, kind, amount_cents, category, description, emoji, date, origin_rule_id
				FROM transactions WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userId, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		err := fmt.Errorf("could not query transactions by date range: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *RepoImpl) Update(ctx context.Context, userId int, tx Transaction) (bool, error) {
	query := `UPDATE transactions SET
					kind = $1,
					amount_cents = $2,
					category = $3,
					description = $4,
					emoji = $5,
					date = $6
				WHERE user_id = $7 AND uid = $8`
	tag, err := r.db.Exec(ctx, query,
		tx.Kind,
		tx.Amount.Cents,
		tx.Category,
		tx.Description,
		tx.Emoji,
		tx.Date.Format("2006-01-02"),
		userId,
		tx.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	query := "DELETE FROM transactions WHERE user_id = $1 AND uid = $2"
	tag, err := r.db.Exec(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	var transactions []Transaction
	for rows.Next() {
		var tx Transaction
		var amountCents int64
		var date time.Time
		var originRuleId *int
		if err := rows.Scan(
			&tx.ID,
			&tx.Uid,
			&tx.Kind,
			&amountCents,
			&tx.Category,
			&tx.Description,
			&tx.Emoji,
			&date,
			&originRuleId,
		); err != nil {
			err := fmt.Errorf("could not scan transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		tx.Amount = money.FromCents(amountCents)
		tx.Date = date
		if originRuleId != nil {
			tx.OriginRuleId = *originRuleId
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}
