package models

import "time"

// Team - сторона, за которую играет участник дроп-ина.
type Team string

const (
	TeamA Team = "team_a"
	TeamB Team = "team_b"
)

func (t Team) Valid() bool {
	return t == TeamA || t == TeamB
}

// EventParticipant - игрок, записавшийся на дроп-ин.
type EventParticipant struct {
	ID         int       `json:"id" db:"id"`
	EventID    int       `json:"event_id" db:"event_id"`
	PlayerName string    `json:"player_name" db:"player_name"`
	Team       *Team     `json:"team" db:"team"`
	JoinedAt   time.Time `json:"joined_at" db:"joined_at"`
}
