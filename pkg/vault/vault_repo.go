package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("vault entry not found")

// Repo stores entries with the Secret field already encrypted. The service
// is the only place plaintext secrets exist.
type Repo interface {
	Store(ctx context.Context, userId int, entry Entry) (int, error)
	GetAll(ctx context.Context, userId int) ([]Entry, error)
	GetByUid(ctx context.Context, userId int, uid string) (Entry, error)
	Update(ctx context.Context, userId int, entry Entry) (bool, error)
	Delete(ctx context.Context, userId int, uid string) (bool, error)
}

const entryColumns = "id, uid, title, username, secret, website, category, emoji"

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewVaultRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, entry Entry) (int, error) {
	query := `INSERT INTO vault_entries (
					uid,
					user_id,
					title,
					username,
					secret,
					website,
					category,
					emoji
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		entry.Uid,
		userId,
		entry.Title,
		entry.Username,
		entry.Secret,
		entry.Website,
		entry.Category,
		entry.Emoji,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store vault entry: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Entry, error) {
	query := fmt.Sprintf("SELECT %s FROM vault_entries WHERE user_id = $1 ORDER BY title", entryColumns)
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query vault entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *RepoImpl) GetByUid(ctx context.Context, userId int, uid string) (Entry, error) {
	query := fmt.Sprintf("SELECT %s FROM vault_entries WHERE user_id = $1 AND uid = $2", entryColumns)
	rows, err := r.db.Query(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not query vault entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrEntryNotFound
	}
	return entries[0], nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, entry Entry) (bool, error) {
	query := `UPDATE vault_entries SET
					title = $1,
					username = $2,
					secret = $3,
					website = $4,
					category = $5,
					emoji = $6
				WHERE user_id = $7 AND uid = $8`
	tag, err := r.db.Exec(ctx, query,
		entry.Title,
		entry.Username,
		entry.Secret,
		entry.Website,
		entry.Category,
		entry.Emoji,
		userId,
		entry.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update vault entry: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	query := "DELETE FROM vault_entries WHERE user_id = $1 AND uid = $2"
	tag, err := r.db.Exec(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete vault entry: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.Uid,
			&entry.Title,
			&entry.Username,
			&entry.Secret,
			&entry.Website,
			&entry.Category,
			&entry.Emoji,
		); err != nil {
			err := fmt.Errorf("could not scan vault entry: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}
