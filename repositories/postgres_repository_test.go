package repositories

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/hopon-app/hopon/db"
	"github.com/hopon-app/hopon/models"
)

// openTestDB подключается к DATABASE_URL и создаёт схему.
// Без DATABASE_URL тесты пропускаются.
func openTestDB(t *testing.T) (EventRepository, ParticipantRepository) {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is not set")
	}

	conn, err := db.Connect(dsn, 5*time.Second)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.EnsureSchema(context.Background(), conn); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// Повторный вызов не должен падать.
	if err := db.EnsureSchema(context.Background(), conn); err != nil {
		t.Fatalf("EnsureSchema twice: %v", err)
	}

	return NewPostgresEventRepository(conn), NewPostgresParticipantRepository(conn)
}

func createTestEvent(t *testing.T, events EventRepository, maxPlayers int) *models.Event {
	t.Helper()

	event := &models.Event{
		Name:       "pg " + t.Name(),
		Sport:      "soccer",
		Location:   "Field 1",
		MaxPlayers: maxPlayers,
	}
	if err := events.Create(context.Background(), event); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = events.Delete(context.Background(), event.ID) })
	return event
}

func TestPostgresCapacityIsEnforcedConcurrently(t *testing.T) {
	events, participants := openTestDB(t)
	ctx := context.Background()
	event := createTestEvent(t, events, 3)

	const players = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		joined  int
		full    int
		unknown []error
	)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := &models.EventParticipant{EventID: event.ID, PlayerName: string(rune('a' + i))}
			err := participants.AddWithinCapacity(ctx, p)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				joined++
			case errors.Is(err, ErrEventFull):
				full++
			default:
				unknown = append(unknown, err)
			}
		}(i)
	}
	wg.Wait()

	if len(unknown) > 0 {
		t.Fatalf("unexpected errors: %v", unknown)
	}
	if joined != 3 || full != players-3 {
		t.Fatalf("joined = %d, full = %d", joined, full)
	}

	got, err := events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CurrentPlayers != 3 {
		t.Errorf("CurrentPlayers = %d, want 3", got.CurrentPlayers)
	}
}

func TestPostgresParticipantErrors(t *testing.T) {
	events, participants := openTestDB(t)
	ctx := context.Background()
	event := createTestEvent(t, events, 5)

	team := models.TeamA
	first := &models.EventParticipant{EventID: event.ID, PlayerName: "Ana", Team: &team}
	if err := participants.AddWithinCapacity(ctx, first); err != nil {
		t.Fatalf("AddWithinCapacity: %v", err)
	}
	if first.ID == 0 || first.JoinedAt.IsZero() {
		t.Errorf("participant = %+v", first)
	}

	dup := &models.EventParticipant{EventID: event.ID, PlayerName: "Ana"}
	if err := participants.AddWithinCapacity(ctx, dup); !errors.Is(err, ErrPlayerNameConflict) {
		t.Errorf("duplicate err = %v, want %v", err, ErrPlayerNameConflict)
	}

	missing := &models.EventParticipant{EventID: event.ID + 1_000_000, PlayerName: "Bo"}
	if err := participants.AddWithinCapacity(ctx, missing); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("missing event err = %v, want %v", err, ErrEventNotFound)
	}

	list, err := participants.ListByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(list) != 1 || list[0].Team == nil || *list[0].Team != models.TeamA {
		t.Errorf("participants = %+v", list)
	}
}

func TestPostgresListOrderAndDelete(t *testing.T) {
	events, participants := openTestDB(t)
	ctx := context.Background()

	// Отдельный вид спорта, чтобы не пересекаться с другими данными в базе.
	sport := "pg-order-" + time.Now().UTC().Format("150405.000000000")
	later := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	sooner := later.Add(-24 * time.Hour)
	notes := "bring water"

	undated := &models.Event{Name: "undated", Sport: sport, Location: "x", MaxPlayers: 2}
	second := &models.Event{Name: "later", Sport: sport, Location: "x", MaxPlayers: 2, EventDate: &later}
	first := &models.Event{Name: "sooner", Sport: sport, Location: "x", MaxPlayers: 2, EventDate: &sooner, Notes: &notes}
	for _, e := range []*models.Event{undated, second, first} {
		if err := events.Create(ctx, e); err != nil {
			t.Fatalf("Create %s: %v", e.Name, err)
		}
		id := e.ID
		t.Cleanup(func() { _ = events.Delete(context.Background(), id) })
	}

	list, err := events.ListBySport(ctx, sport)
	if err != nil {
		t.Fatalf("ListBySport: %v", err)
	}
	var names []string
	for _, e := range list {
		names = append(names, e.Name)
	}
	if len(names) != 3 || names[0] != "sooner" || names[1] != "later" || names[2] != "undated" {
		t.Fatalf("order = %v", names)
	}
	if list[0].Notes == nil || *list[0].Notes != notes || list[2].EventDate != nil {
		t.Errorf("optional fields = %+v / %+v", list[0], list[2])
	}

	if err := participants.AddWithinCapacity(ctx, &models.EventParticipant{EventID: first.ID, PlayerName: "Cy"}); err != nil {
		t.Fatalf("AddWithinCapacity: %v", err)
	}
	if err := events.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := events.Delete(ctx, first.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("second delete err = %v, want %v", err, ErrEventNotFound)
	}
	if _, err := events.GetByID(ctx, first.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("GetByID after delete err = %v", err)
	}
	rest, err := participants.ListByEvent(ctx, first.ID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("participants survived delete: %+v", rest)
	}
}
