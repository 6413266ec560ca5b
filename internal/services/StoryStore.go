package services

import (
	"blueghost/internal/models"
	"blueghost/internal/providers"
	"sync"
)

// Persister is the durable boundary of the story store.
type Persister interface {
	Load() (models.Storage, error)
	Save(storage models.Storage) error
}

type StoryStoreInterface interface {
	Load() error
	Append(username string, record models.GenerationRecord) (int, error)
	History(username string) []models.GenerationRecord
	Entry(username string, n int) (models.GenerationRecord, bool)
	At(username string, seq int) (models.GenerationRecord, bool)
	Len(username string) int
	Count() int
	Users() int
}

// StoryStore keeps every user's generation history in memory and rewrites the
// whole durable file after each append. Writers are serialized within one
// process only; two processes sharing the file still race and the last full
// write wins.
type StoryStore struct {
	mu        sync.RWMutex
	data      models.Storage
	persister Persister
	logger    providers.Logger
}

func NewStoryStore(persister Persister, logger providers.Logger) *StoryStore {
	return &StoryStore{
		data:      models.Storage{},
		persister: persister,
		logger:    logger,
	}
}

func (s *StoryStore) Load() error {
	data, err := s.persister.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	s.logger.Infof(providers.TypeStore, "Loaded %d stories for %d users", data.Count(), len(data))
	return nil
}

// Append adds record at the end of the user's history, persists the store and
// returns the record's 1-based chronological position. A failed write leaves
// memory as it was before the call.
func (s *StoryStore) Append(username string, record models.GenerationRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[username]
	s.data[username] = append(prev, record)

	if err := s.persister.Save(s.data); err != nil {
		if existed {
			s.data[username] = prev
		} else {
			delete(s.data, username)
		}
		s.logger.Errorf(providers.TypeStore, "Failed to persist story for %s: %s", username, err)
		return 0, err
	}

	seq := len(s.data[username])
	s.logger.Debugf(providers.TypeStore, "Stored story #%d for %s", seq, username)
	return seq, nil
}

// History returns the user's records, most recent first.
func (s *StoryStore) History(username string) []models.GenerationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.data[username]
	out := make([]models.GenerationRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// Entry returns the n-th record of History (1-based).
func (s *StoryStore) Entry(username string, n int) (models.GenerationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.data[username]
	if n < 1 || n > len(records) {
		return models.GenerationRecord{}, false
	}
	return records[len(records)-n], true
}

// At returns the record at 1-based chronological position seq. Histories are
// never reordered or truncated, so a position keeps naming the same record.
func (s *StoryStore) At(username string, seq int) (models.GenerationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.data[username]
	if seq < 1 || seq > len(records) {
		return models.GenerationRecord{}, false
	}
	return records[seq-1], true
}

func (s *StoryStore) Len(username string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[username])
}

func (s *StoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Count()
}

func (s *StoryStore) Users() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
