package call

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, c Call) (int, error)
	GetAll(ctx context.Context, userId int) ([]Call, error)
	UpdateStatus(ctx context.Context, userId int, uid string, status Status) (bool, error)
	Delete(ctx context.Context, userId int, uid string) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewCallRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, c Call) (int, error) {
	query := `INSERT INTO calls (
					uid,
					user_id,
					caller_name,
					company,
					phone,
					email,
					call_type,
					priority,
					notes,
					follow_up,
					follow_up_date,
					status,
					date
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`

	var followUpDate any
	if !c.FollowUpDate.IsZero() {
		followUpDate = c.FollowUpDate.Format("2006-01-02")
	}

	var id int
	err := r.db.QueryRow(ctx, query,
		c.Uid,
		userId,
		c.CallerName,
		c.Company,
		c.Phone,
		c.Email,
		c.Type,
		c.Priority,
		c.Notes,
		c.FollowUp,
		followUpDate,
		c.Status,
		c.Date.Format("2006-01-02"),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store call: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Call, error) {
	query := `SELECT id, uid, caller_name, company, phone, email, call_type, priority, notes, follow_up, follow_up_date, status, date
				FROM calls WHERE user_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query calls: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanCalls(rows)
}

func (r *RepoImpl) UpdateStatus(ctx context.Context, userId int, uid string, status Status) (bool, error) {
	query := "UPDATE calls SET status = $1 WHERE user_id = $2 AND uid = $3"
	tag, err := r.db.Exec(ctx, query, status, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not update call status: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	query := "DELETE FROM calls WHERE user_id = $1 AND uid = $2"
	tag, err := r.db.Exec(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete call: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanCalls(rows pgx.Rows) ([]Call, error) {
	var calls []Call
	for rows.Next() {
		var c Call
		var followUpDate *time.Time
		if err := rows.Scan(
			&c.ID,
			&c.Uid,
			&c.CallerName,
			&c.Company,
			&c.Phone,
			&c.Email,
			&c.Type,
			&c.Priority,
			&c.Notes,
			&c.FollowUp,
			&followUpDate,
			&c.Status,
			&c.Date,
		); err != nil {
			err := fmt.Errorf("could not scan call: %w", err)
			log.Error(err)
			return nil, err
		}
		if followUpDate != nil {
			c.FollowUpDate = *followUpDate
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return calls, nil
}
