package recurring

import (
	"context"
	"time"
)

type StubRepo struct {
	nextId int
	data   map[int]Rule
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]Rule{}}
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Rule{}
}

func (s *StubRepo) Store(ctx context.Context, userId int, rule Rule) (int, error) {
	s.nextId++
	rule.ID = s.nextId
	rule.UserId = userId
	s.data[rule.ID] = rule
	return rule.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]Rule, error) {
	var rules []Rule
	for _, rule := range s.data {
		if rule.UserId == userId {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (s *StubRepo) GetByUid(ctx context.Context, userId int, uid string) (Rule, error) {
	for _, rule := range s.data {
		if rule.UserId == userId && rule.Uid == uid {
			return rule, nil
		}
	}
	return Rule{}, ErrRuleNotFound
}

func (s *StubRepo) Update(ctx context.Context, userId int, rule Rule) (bool, error) {
	for id, existing := range s.data {
		if existing.UserId == userId && existing.Uid == rule.Uid {
			rule.ID = id
			rule.UserId = userId
			rule.Active = existing.Active
			s.data[id] = rule
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) SetActive(ctx context.Context, userId int, uid string, active bool) (bool, error) {
	for id, rule := range s.data {
		if rule.UserId == userId && rule.Uid == uid {
			rule.Active = active
			s.data[id] = rule
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	for id, rule := range s.data {
		if rule.UserId == userId && rule.Uid == uid {
			delete(s.data, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) FindDue(ctx context.Context, asOf time.Time) ([]Rule, error) {
	var rules []Rule
	for _, rule := range s.data {
		if rule.Active && !rule.NextDate.After(asOf) {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (s *StubRepo) AdvanceNextDate(ctx context.Context, ruleId int, from, to time.Time) (bool, error) {
	rule, ok := s.data[ruleId]
	if !ok || !rule.NextDate.Equal(from) {
		return false, nil
	}
	rule.NextDate = to
	s.data[ruleId] = rule
	return true, nil
}
