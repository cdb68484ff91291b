package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Таблицы дроп-инов и их участников.
// Все операторы идемпотентны, поэтому EnsureSchema можно вызывать при каждом старте.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id          SERIAL PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		sport       VARCHAR(50)  NOT NULL,
		location    TEXT         NOT NULL,
		notes       TEXT,
		max_players INTEGER      NOT NULL CHECK (max_players > 0),
		created_at  TIMESTAMPTZ  NOT NULL DEFAULT now(),
		event_date  TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS events_sport_idx ON events (sport)`,
	`CREATE TABLE IF NOT EXISTS event_participants (
		id          SERIAL PRIMARY KEY,
		event_id    INTEGER      NOT NULL REFERENCES events (id) ON DELETE CASCADE,
		player_name VARCHAR(100) NOT NULL,
		team        VARCHAR(20),
		joined_at   TIMESTAMPTZ  NOT NULL DEFAULT now(),
		CONSTRAINT event_participants_event_player_key UNIQUE (event_id, player_name)
	)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
