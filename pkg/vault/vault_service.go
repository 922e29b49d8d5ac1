package vault

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/pkg/user"
)

var ErrInvalidEntry = fmt.Errorf("invalid vault entry")

type Service interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	// GetAll returns entries without their secrets. Secrets are revealed one
	// at a time through Reveal.
	GetAll(ctx context.Context) ([]Entry, error)
	Reveal(ctx context.Context, uid string) (Entry, error)
	Update(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo   Repo
	cipher *Cipher
}

func NewVaultService(repo Repo, cipher *Cipher) *ServiceImpl {
	return &ServiceImpl{repo: repo, cipher: cipher}
}

func validateEntry(entry Entry) error {
	if entry.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidEntry)
	}
	if entry.Secret == "" {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidEntry)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, entry Entry) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateEntry(entry); err != nil {
		return Entry{}, err
	}

	entry.Uid = uuid.NewString()
	stored := entry
	stored.Secret, err = s.cipher.Encrypt(entry.Secret)
	if err != nil {
		return Entry{}, err
	}

	id, err := s.repo.Store(ctx, userId, stored)
	if err != nil {
		return Entry{}, err
	}
	entry.ID = id
	return entry, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	entries, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Secret = ""
	}
	return entries, nil
}

func (s *ServiceImpl) Reveal(ctx context.Context, uid string) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	entry, err := s.repo.GetByUid(ctx, userId, uid)
	if err != nil {
		return Entry{}, err
	}
	entry.Secret, err = s.cipher.Decrypt(entry.Secret)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Update re-encrypts the secret when the caller supplies one; an empty secret
// keeps the stored ciphertext untouched.
func (s *ServiceImpl) Update(ctx context.Context, entry Entry) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if entry.Title == "" {
		return Entry{}, fmt.Errorf("%w: title must not be empty", ErrInvalidEntry)
	}

	existing, err := s.repo.GetByUid(ctx, userId, entry.Uid)
	if err != nil {
		return Entry{}, err
	}

	stored := entry
	if entry.Secret == "" {
		stored.Secret = existing.Secret
	} else {
		stored.Secret, err = s.cipher.Encrypt(entry.Secret)
		if err != nil {
			return Entry{}, err
		}
	}

	updated, err := s.repo.Update(ctx, userId, stored)
	if err != nil {
		return Entry{}, err
	}
	if !updated {
		log.Warnf("vault entry not updated, probably because it does not exist (%s) or the user (%d) is not the owner", entry.Uid, userId)
		return Entry{}, ErrEntryNotFound
	}
	entry.ID = existing.ID
	entry.Secret = ""
	return entry, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, uid)
}
