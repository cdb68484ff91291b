package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hopon-app/hopon/models"
	"github.com/hopon-app/hopon/realtime"
	"github.com/hopon-app/hopon/repositories"
)

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []realtime.Message
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg := message.(realtime.Message)
	if msg.RoomID != roomID {
		panic("room mismatch")
	}
	b.messages = append(b.messages, msg)
}

func (b *recordingBroadcaster) last() realtime.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.messages[len(b.messages)-1]
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, m := range b.messages {
		out = append(out, m.Type)
	}
	return out
}

func newTestEventService() (EventService, *recordingBroadcaster) {
	store := repositories.NewMemoryStore()
	b := &recordingBroadcaster{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEventService(store.Events(), store.Participants(), b, logger), b
}

func strPtr(s string) *string { return &s }

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newTestEventService()
	ctx := context.Background()

	valid := CreateEventInput{Name: "Game", Location: "Park", MaxPlayers: 10}
	tests := []struct {
		name   string
		sport  string
		mutate func(in *CreateEventInput)
		want   error
	}{
		{"unknown sport", "curling", func(in *CreateEventInput) {}, ErrSportNotFound},
		{"blank name", "soccer", func(in *CreateEventInput) { in.Name = "   " }, ErrEventNameRequired},
		{"long name", "soccer", func(in *CreateEventInput) { in.Name = strings.Repeat("é", 101) }, ErrEventNameTooLong},
		{"blank location", "soccer", func(in *CreateEventInput) { in.Location = "" }, ErrLocationRequired},
		{"zero players", "soccer", func(in *CreateEventInput) { in.MaxPlayers = 0 }, ErrInvalidMaxPlayers},
		{"ok", "soccer", func(in *CreateEventInput) {}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := svc.CreateEvent(ctx, tt.sport, in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateEventNormalizesInput(t *testing.T) {
	svc, b := newTestEventService()
	date := time.Date(2026, 6, 1, 18, 0, 0, 0, time.FixedZone("EDT", -4*3600))

	event, err := svc.CreateEvent(context.Background(), "soccer", CreateEventInput{
		Name:       "  Evening run ",
		Location:   " Field 3 ",
		Notes:      strPtr("   "),
		MaxPlayers: 12,
		EventDate:  &date,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.Name != "Evening run" || event.Location != "Field 3" || event.Notes != nil {
		t.Errorf("event = %+v", event)
	}
	if event.EventDate.Location() != time.UTC || !event.EventDate.Equal(date) {
		t.Errorf("EventDate = %v", event.EventDate)
	}
	if got := b.types(); len(got) != 1 || got[0] != realtime.MessageEventCreated {
		t.Errorf("broadcasts = %v", got)
	}
}

func TestJoinEvent(t *testing.T) {
	svc, b := newTestEventService()
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "basketball", CreateEventInput{Name: "3v3", Location: "Court", MaxPlayers: 2})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	tests := []struct {
		name  string
		id    int
		input JoinEventInput
		want  error
	}{
		{"invalid id", 0, JoinEventInput{PlayerName: "a"}, ErrInvalidEventID},
		{"missing event", 99, JoinEventInput{PlayerName: "a"}, ErrEventNotFound},
		{"blank player", event.ID, JoinEventInput{PlayerName: " "}, ErrPlayerNameRequired},
		{"long player", event.ID, JoinEventInput{PlayerName: strings.Repeat("x", 101)}, ErrPlayerNameTooLong},
		{"bad team", event.ID, JoinEventInput{PlayerName: "a", Team: strPtr("red")}, ErrInvalidTeam},
		{"first", event.ID, JoinEventInput{PlayerName: "a", Team: strPtr("team_b")}, nil},
		{"duplicate", event.ID, JoinEventInput{PlayerName: "a"}, ErrPlayerNameConflict},
		{"blank team is no team", event.ID, JoinEventInput{PlayerName: "b", Team: strPtr("")}, nil},
		{"full", event.ID, JoinEventInput{PlayerName: "c"}, ErrEventFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.JoinEvent(ctx, tt.id, tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	// Второй игрок заполнил событие на двоих.
	payload, ok := b.last().Payload.(map[string]any)
	if !ok || payload["event_full"] != true {
		t.Errorf("last join payload = %+v, want event_full", b.last().Payload)
	}

	details, err := svc.GetEventDetails(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEventDetails: %v", err)
	}
	if details.Event.CurrentPlayers != 2 || !details.Event.IsFull() {
		t.Errorf("event = %+v", details.Event)
	}
	if team := details.Participants[0].Team; team == nil || *team != models.TeamB {
		t.Errorf("team = %v", team)
	}
	if details.Participants[1].Team != nil {
		t.Errorf("blank team stored as %v", *details.Participants[1].Team)
	}

	want := []string{realtime.MessageEventCreated, realtime.MessageParticipantJoined, realtime.MessageParticipantJoined}
	if got := b.types(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("broadcasts = %v, want %v", got, want)
	}
}

func TestDeleteEvent(t *testing.T) {
	svc, b := newTestEventService()
	ctx := context.Background()

	event, _ := svc.CreateEvent(ctx, "soccer", CreateEventInput{Name: "g", Location: "l", MaxPlayers: 4})
	if err := svc.DeleteEvent(ctx, event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if err := svc.DeleteEvent(ctx, event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	if _, err := svc.GetEventDetails(ctx, event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("details after delete err = %v", err)
	}
	if events, _ := svc.ListEvents(ctx, "soccer"); len(events) != 0 {
		t.Errorf("events after delete = %v", events)
	}
	if got := b.types(); got[len(got)-1] != realtime.MessageEventDeleted {
		t.Errorf("broadcasts = %v", got)
	}
}

func TestSportService(t *testing.T) {
	svc := NewSportService()

	if got := svc.ActionsTitle("soccer"); got != "Soccer ⚽" {
		t.Errorf("ActionsTitle(soccer) = %q", got)
	}
	if got := svc.ActionsTitle("unknown-sport"); got != GenericSportTitle {
		t.Errorf("ActionsTitle(unknown) = %q", got)
	}
	if _, err := svc.GetSportByID(context.Background(), "unknown-sport"); !errors.Is(err, ErrSportNotFound) {
		t.Errorf("GetSportByID err = %v", err)
	}
	sports, _ := svc.GetAllSports(context.Background())
	if len(sports) != 2 {
		t.Errorf("GetAllSports = %v", sports)
	}
}
