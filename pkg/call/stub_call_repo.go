package call

import "context"

type StubRepo struct {
	nextId int
	data   map[string]Call
	owners map[string]int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[string]Call{}, owners: map[string]int{}}
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = map[string]Call{}
	s.owners = map[string]int{}
}

func (s *StubRepo) Store(ctx context.Context, userId int, c Call) (int, error) {
	s.nextId++
	c.ID = s.nextId
	s.data[c.Uid] = c
	s.owners[c.Uid] = userId
	return c.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]Call, error) {
	calls := make([]Call, 0, len(s.data))
	for uid, c := range s.data {
		if s.owners[uid] == userId {
			calls = append(calls, c)
		}
	}
	return calls, nil
}

func (s *StubRepo) UpdateStatus(ctx context.Context, userId int, uid string, status Status) (bool, error) {
	c, ok := s.data[uid]
	if !ok || s.owners[uid] != userId {
		return false, nil
	}
	c.Status = status
	s.data[uid] = c
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
