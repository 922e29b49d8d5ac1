package transaction

import (
	"context"
	"time"
)

type StubRepo struct {
	nextId int
	data   map[string]Transaction
	owners map[string]int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[string]Transaction{}, owners: map[string]int{}}
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = map[string]Transaction{}
	s.owners = map[string]int{}
}

func (s *StubRepo) Store(ctx context.Context, userId int, tx Transaction) (int, error) {
	s.nextId++
	tx.ID = s.nextId
	s.data[tx.Uid] = tx
	s.owners[tx.Uid] = userId
	return tx.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]Transaction, error) {
	transactions := make([]Transaction, 0, len(s.data))
	for uid, tx := range s.data {
		if s.owners[uid] == userId {
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

func (s *StubRepo) GetByUid(ctx context.Context, userId int, uid string) (Transaction, error) {
	tx, ok := s.data[uid]
	if !ok || s.owners[uid] != userId {
		return Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

func (s *StubRepo) FindByDateRange(ctx context.Context, userId int, from, to time.Time) ([]Transaction, error) {
	var transactions []Transaction
	for uid, tx := range s.data {
		if s.owners[uid] != userId {
			continue
		}
		if !tx.Date.Before(from) && tx.Date.Before(to) {
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

func (s *StubRepo) Update(ctx context.Context, userId int, tx Transaction) (bool, error) {
	existing, ok := s.data[tx.Uid]
	if !ok || s.owners[tx.Uid] != userId {
		return false, nil
	}
	tx.ID = existing.ID
	tx.OriginRuleId = existing.OriginRuleId
	s.data[tx.Uid] = tx
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	if _, ok := s.data[uid]; !ok || s.owners[uid] != userId {
		return false, nil
	}
	delete(s.data, uid)
	delete(s.owners, uid)
	return true, nil
}
