package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации
	ErrEventNameRequired  = errors.New("event name is required")
	ErrEventNameTooLong   = errors.New("event name must not exceed 100 characters")
	ErrLocationRequired   = errors.New("event location is required")
	ErrInvalidMaxPlayers  = errors.New("max players must be positive")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrPlayerNameTooLong  = errors.New("player name must not exceed 100 characters")
	ErrInvalidTeam        = errors.New("team must be team_a or team_b")
	ErrInvalidEventID     = errors.New("event id must be a positive integer")

	// Ошибки конфликтов
	ErrEventFull          = errors.New("event is full")
	ErrPlayerNameConflict = errors.New("player name is already taken for this event")

	// Ошибки, специфичные для сущностей
	ErrSportNotFound = errors.New("sport not found")
	ErrEventNotFound = errors.New("event not found")
)
