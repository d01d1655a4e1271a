package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

var errStoreDown = errors.New("store down")

// rawQuestions builds n questions with four choices each, the correct index taken from correct.
func rawQuestions(correct ...int) []entities.RawQuestion {
	raw := make([]entities.RawQuestion, len(correct))
	for i, c := range correct {
		raw[i] = entities.RawQuestion{
			Question: "Q" + strconv.Itoa(i),
			Choices:  []string{"a" + strconv.Itoa(i), "b" + strconv.Itoa(i), "c" + strconv.Itoa(i), "d" + strconv.Itoa(i)},
			Answer:   c,
		}
	}
	return raw
}

func mustBank(raw []entities.RawQuestion, shuffle bool, shuffler *Shuffler) *QuestionBank {
	bank, err := BuildQuestionBank(raw, shuffle, shuffler)
	if err != nil {
		panic(err)
	}
	return bank
}

type fakeSource struct {
	raw   []entities.RawQuestion
	err   error
	calls int
}

func (s *fakeSource) Load(_ context.Context) ([]entities.RawQuestion, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entities.RawQuestion, len(s.raw))
	copy(out, s.raw)
	return out, nil
}

// mapStore is an in-memory KeyValueStore with failure injection.
type mapStore struct {
	mu      sync.Mutex
	values  map[int64]map[string]string
	failGet bool
	failSet bool
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[int64]map[string]string)}
}

func (s *mapStore) Get(_ context.Context, scope int64, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errStoreDown
	}
	v, ok := s.values[scope][key]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, scope int64, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStoreDown
	}
	s.put(scope, key, value)
	return nil
}

func (s *mapStore) Update(_ context.Context, scope int64, key string, fn func(string, bool) (string, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStoreDown
	}
	old, ok := s.values[scope][key]
	if next, write := fn(old, ok); write {
		s.put(scope, key, next)
	}
	return nil
}

func (s *mapStore) put(scope int64, key, value string) {
	if s.values[scope] == nil {
		s.values[scope] = make(map[string]string)
	}
	s.values[scope][key] = value
}

func (s *mapStore) raw(scope int64, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope][key]
	return v, ok
}
