package limit

import (
	"context"
)

type StubRepo struct {
	nextId int
	data   map[int]BudgetLimit
	owners map[int]int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]BudgetLimit{}, owners: map[int]int{}}
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]BudgetLimit{}
	s.owners = map[int]int{}
}

func (s *StubRepo) Store(ctx context.Context, userId int, limit BudgetLimit) (int, error) {
	for id, existing := range s.data {
		if s.owners[id] == userId && existing.Category == limit.Category {
			return 0, ErrDuplicateCategory
		}
	}
	s.nextId++
	limit.ID = s.nextId
	s.data[limit.ID] = limit
	s.owners[limit.ID] = userId
	return limit.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]BudgetLimit, error) {
	var limits []BudgetLimit
	for id, limit := range s.data {
		if s.owners[id] == userId {
			limits = append(limits, limit)
		}
	}
	return limits, nil
}

func (s *StubRepo) GetByUid(ctx context.Context, userId int, uid string) (BudgetLimit, error) {
	for id, limit := range s.data {
		if s.owners[id] == userId && limit.Uid == uid {
			return limit, nil
		}
	}
	return BudgetLimit{}, ErrLimitNotFound
}

func (s *StubRepo) Update(ctx context.Context, userId int, limit BudgetLimit) (bool, error) {
	for id, existing := range s.data {
		if s.owners[id] == userId && existing.Uid == limit.Uid {
			limit.ID = id
			limit.Active = existing.Active
			s.data[id] = limit
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) SetActive(ctx context.Context, userId int, uid string, active bool) (bool, error) {
	for id, limit := range s.data {
		if s.owners[id] == userId && limit.Uid == uid {
			limit.Active = active
			s.data[id] = limit
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	for id, limit := range s.data {
		if s.owners[id] == userId && limit.Uid == uid {
			delete(s.data, id)
			delete(s.owners, id)
			return true, nil
		}
	}
	return false, nil
}
