package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hopon-app/hopon/models"
	"github.com/lib/pq"
)

var (
	ErrEventFull          = errors.New("event has reached max players")
	ErrPlayerNameConflict = errors.New("player name already taken for this event")
)

type ParticipantRepository interface {
	// AddWithinCapacity добавляет участника, если в событии есть свободное место.
	AddWithinCapacity(ctx context.Context, participant *models.EventParticipant) error
	ListByEvent(ctx context.Context, eventID int) ([]models.EventParticipant, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) AddWithinCapacity(ctx context.Context, participant *models.EventParticipant) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Блокируем строку события, чтобы параллельные записи не превысили лимит.
	var maxPlayers int
	err = tx.QueryRowContext(ctx, `SELECT max_players FROM events WHERE id = $1 FOR UPDATE`, participant.EventID).Scan(&maxPlayers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}

	var current int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_participants WHERE event_id = $1`, participant.EventID).Scan(&current)
	if err != nil {
		return err
	}
	if current >= maxPlayers {
		return ErrEventFull
	}

	query := `INSERT INTO event_participants (event_id, player_name, team)
			  VALUES ($1, $2, $3)
			  RETURNING id, joined_at`
	err = tx.QueryRowContext(ctx, query, participant.EventID, participant.PlayerName, participant.Team).
		Scan(&participant.ID, &participant.JoinedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch {
			case pqErr.Code == "23505" && pqErr.Constraint == "event_participants_event_player_key": // unique_violation
				return ErrPlayerNameConflict
			case pqErr.Code == "23503": // foreign_key_violation
				return ErrEventNotFound
			}
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit participant insert: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) ListByEvent(ctx context.Context, eventID int) ([]models.EventParticipant, error) {
	query := `SELECT id, event_id, player_name, team, joined_at
			  FROM event_participants
			  WHERE event_id = $1
			  ORDER BY joined_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]models.EventParticipant, 0)
	for rows.Next() {
		var p models.EventParticipant
		var team sql.NullString
		if scanErr := rows.Scan(&p.ID, &p.EventID, &p.PlayerName, &team, &p.JoinedAt); scanErr != nil {
			return nil, scanErr
		}
		if team.Valid {
			t := models.Team(team.String)
			p.Team = &t
		}
		participants = append(participants, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}
