package models

import "time"

// Event представляет дроп-ин игру, созданную для вида спорта.
type Event struct {
	ID             int        `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Sport          string     `json:"sport" db:"sport"`
	Location       string     `json:"location" db:"location"` // ссылка на Google Maps или произвольный адрес
	Notes          *string    `json:"notes" db:"notes"`
	MaxPlayers     int        `json:"max_players" db:"max_players"`
	CurrentPlayers int        `json:"current_players" db:"-"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	EventDate      *time.Time `json:"event_date" db:"event_date"`
}

// IsFull сообщает, набрано ли максимальное число игроков.
func (e *Event) IsFull() bool {
	return e.CurrentPlayers >= e.MaxPlayers
}
