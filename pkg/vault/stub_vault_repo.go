package vault

import (
	"context"
)

type StubRepo struct {
	nextId int
	data   map[int]Entry
	owners map[int]int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]Entry{}, owners: map[int]int{}}
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Entry{}
	s.owners = map[int]int{}
}

func (s *StubRepo) Store(ctx context.Context, userId int, entry Entry) (int, error) {
	s.nextId++
	entry.ID = s.nextId
	s.data[entry.ID] = entry
	s.owners[entry.ID] = userId
	return entry.ID, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]Entry, error) {
	var entries []Entry
	for id, entry := range s.data {
		if s.owners[id] == userId {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *StubRepo) GetByUid(ctx context.Context, userId int, uid string) (Entry, error) {
	for id, entry := range s.data {
		if s.owners[id] == userId && entry.Uid == uid {
			return entry, nil
		}
	}
	return Entry{}, ErrEntryNotFound
}

func (s *StubRepo) Update(ctx context.Context, userId int, entry Entry) (bool, error) {
	for id, existing := range s.data {
		if s.owners[id] == userId && existing.Uid == entry.Uid {
			entry.ID = id
			s.data[id] = entry
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	for id, entry := range s.data {
		if s.owners[id] == userId && entry.Uid == uid {
			delete(s.data, id)
			delete(s.owners, id)
			return true, nil
		}
	}
	return false, nil
}
