package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hopon-app/hopon/models"
)

// MemoryStore хранит события и участников в памяти процесса.
// Используется, когда DATABASE_URL не задан, и в тестах.
type MemoryStore struct {
	mu           sync.Mutex
	nextEventID  int
	nextPartID   int
	events       map[int]models.Event
	participants map[int][]models.EventParticipant // по event_id
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events:       make(map[int]models.Event),
		participants: make(map[int][]models.EventParticipant),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Events() EventRepository {
	return memoryEventRepository{s}
}

func (s *MemoryStore) Participants() ParticipantRepository {
	return memoryParticipantRepository{s}
}

type memoryEventRepository struct {
	s *MemoryStore
}

func (r memoryEventRepository) Create(_ context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextEventID++
	event.ID = r.s.nextEventID
	event.CreatedAt = r.s.now()
	event.CurrentPlayers = 0
	r.s.events[event.ID] = *event
	return nil
}

func (r memoryEventRepository) GetByID(_ context.Context, id int) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event, ok := r.s.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	event.CurrentPlayers = len(r.s.participants[id])
	return &event, nil
}

func (r memoryEventRepository) ListBySport(_ context.Context, sport string) ([]models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	events := make([]models.Event, 0)
	for id, event := range r.s.events {
		if event.Sport != sport {
			continue
		}
		event.CurrentPlayers = len(r.s.participants[id])
		events = append(events, event)
	}

	// Тот же порядок, что и в postgres: event_date (NULL в конце), created_at, id.
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch {
		case a.EventDate != nil && b.EventDate == nil:
			return true
		case a.EventDate == nil && b.EventDate != nil:
			return false
		case a.EventDate != nil && !a.EventDate.Equal(*b.EventDate):
			return a.EventDate.Before(*b.EventDate)
		case !a.CreatedAt.Equal(b.CreatedAt):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.ID < b.ID
		}
	})
	return events, nil
}

func (r memoryEventRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(r.s.events, id)
	delete(r.s.participants, id)
	return nil
}

type memoryParticipantRepository struct {
	s *MemoryStore
}

func (r memoryParticipantRepository) AddWithinCapacity(_ context.Context, participant *models.EventParticipant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event, ok := r.s.events[participant.EventID]
	if !ok {
		return ErrEventNotFound
	}

	roster := r.s.participants[participant.EventID]
	if len(roster) >= event.MaxPlayers {
		return ErrEventFull
	}
	for _, p := range roster {
		if p.PlayerName == participant.PlayerName {
			return ErrPlayerNameConflict
		}
	}

	r.s.nextPartID++
	participant.ID = r.s.nextPartID
	participant.JoinedAt = r.s.now()
	r.s.participants[participant.EventID] = append(roster, *participant)
	return nil
}

func (r memoryParticipantRepository) ListByEvent(_ context.Context, eventID int) ([]models.EventParticipant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	roster := r.s.participants[eventID]
	participants := make([]models.EventParticipant, len(roster))
	copy(participants, roster)
	return participants, nil
}
