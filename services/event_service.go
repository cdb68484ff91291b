package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hopon-app/hopon/models"
	"github.com/hopon-app/hopon/realtime"
	"github.com/hopon-app/hopon/repositories"
	"golang.org/x/sync/errgroup"
)

const maxNameLength = 100

// RoomBroadcaster - то, через что сервис рассылает обновления (realtime.Hub).
type RoomBroadcaster interface {
	BroadcastToRoom(roomID string, message any)
}

type EventService interface {
	CreateEvent(ctx context.Context, sportID string, input CreateEventInput) (*models.Event, error)
	ListEvents(ctx context.Context, sportID string) ([]models.Event, error)
	GetEventDetails(ctx context.Context, eventID int) (*EventDetails, error)
	DeleteEvent(ctx context.Context, eventID int) error
	JoinEvent(ctx context.Context, eventID int, input JoinEventInput) (*models.EventParticipant, error)
}

type CreateEventInput struct {
	Name       string     `json:"name"`
	Location   string     `json:"location"`
	Notes      *string    `json:"notes,omitempty"`
	MaxPlayers int        `json:"max_players"`
	EventDate  *time.Time `json:"event_date,omitempty"`
}

type JoinEventInput struct {
	PlayerName string  `json:"player_name"`
	Team       *string `json:"team,omitempty"`
}

// EventDetails - событие вместе со списком участников.
type EventDetails struct {
	Event        *models.Event             `json:"event"`
	Participants []models.EventParticipant `json:"participants"`
}

type eventService struct {
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
	broadcaster     RoomBroadcaster
	logger          *slog.Logger
}

func NewEventService(
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	broadcaster RoomBroadcaster,
	logger *slog.Logger,
) EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		broadcaster:     broadcaster,
		logger:          logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, sportID string, input CreateEventInput) (*models.Event, error) {
	if _, ok := models.FindSport(sportID); !ok {
		return nil, ErrSportNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEventNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrEventNameTooLong
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, ErrLocationRequired
	}
	if input.MaxPlayers <= 0 {
		return nil, ErrInvalidMaxPlayers
	}

	event := &models.Event{
		Name:       name,
		Sport:      sportID,
		Location:   location,
		Notes:      normalizeOptional(input.Notes),
		MaxPlayers: input.MaxPlayers,
		EventDate:  input.EventDate,
	}
	if event.EventDate != nil {
		utc := event.EventDate.UTC()
		event.EventDate = &utc
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("event created", slog.Int("event_id", event.ID), slog.String("sport", sportID))
	s.publish(sportID, realtime.MessageEventCreated, event)
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, sportID string) ([]models.Event, error) {
	if _, ok := models.FindSport(sportID); !ok {
		return nil, ErrSportNotFound
	}

	events, err := s.eventRepo.ListBySport(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for sport %s: %w", sportID, err)
	}
	return events, nil
}

func (s *eventService) GetEventDetails(ctx context.Context, eventID int) (*EventDetails, error) {
	if eventID <= 0 {
		return nil, ErrInvalidEventID
	}

	var details EventDetails
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		event, err := s.eventRepo.GetByID(gCtx, eventID)
		if err != nil {
			return mapRepoError(err)
		}
		details.Event = event
		return nil
	})
	g.Go(func() error {
		participants, err := s.participantRepo.ListByEvent(gCtx, eventID)
		if err != nil {
			return fmt.Errorf("failed to list participants for event %d: %w", eventID, err)
		}
		details.Participants = participants
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Счётчик берём из того же снимка, что и список участников.
	details.Event.CurrentPlayers = len(details.Participants)
	return &details, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID int) error {
	if eventID <= 0 {
		return ErrInvalidEventID
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return mapRepoError(err)
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return mapRepoError(err)
	}

	s.logger.Info("event deleted", slog.Int("event_id", eventID), slog.String("sport", event.Sport))
	s.publish(event.Sport, realtime.MessageEventDeleted, map[string]int{"id": eventID})
	return nil
}

func (s *eventService) JoinEvent(ctx context.Context, eventID int, input JoinEventInput) (*models.EventParticipant, error) {
	if eventID <= 0 {
		return nil, ErrInvalidEventID
	}

	playerName := strings.TrimSpace(input.PlayerName)
	if playerName == "" {
		return nil, ErrPlayerNameRequired
	}
	if utf8.RuneCountInString(playerName) > maxNameLength {
		return nil, ErrPlayerNameTooLong
	}

	participant := &models.EventParticipant{
		EventID:    eventID,
		PlayerName: playerName,
	}
	if teamStr := normalizeOptional(input.Team); teamStr != nil {
		team := models.Team(*teamStr)
		if !team.Valid() {
			return nil, ErrInvalidTeam
		}
		participant.Team = &team
	}

	if err := s.participantRepo.AddWithinCapacity(ctx, participant); err != nil {
		return nil, mapRepoError(err)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		// Участник уже записан; без события просто не рассылаем обновление.
		s.logger.Warn("event vanished after join", slog.Int("event_id", eventID), slog.Any("error", err))
		return participant, nil
	}

	s.logger.Info("player joined event",
		slog.Int("event_id", eventID),
		slog.Int("current_players", event.CurrentPlayers),
		slog.Int("max_players", event.MaxPlayers),
		slog.Bool("full", event.IsFull()),
	)
	s.publish(event.Sport, realtime.MessageParticipantJoined, map[string]any{
		"participant": participant,
		"event":       event,
		"event_full":  event.IsFull(),
	})
	return participant, nil
}

func (s *eventService) publish(sportID, messageType string, payload any) {
	if s.broadcaster == nil {
		return
	}
	room := realtime.SportRoom(sportID)
	s.broadcaster.BroadcastToRoom(room, realtime.Message{
		Type:    messageType,
		Payload: payload,
		RoomID:  room,
	})
}

// mapRepoError переводит ошибки репозиториев в ошибки сервисного слоя.
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, repositories.ErrEventFull):
		return ErrEventFull
	case errors.Is(err, repositories.ErrPlayerNameConflict):
		return ErrPlayerNameConflict
	default:
		return err
	}
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
