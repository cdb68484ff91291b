package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hopon-app/hopon/models"
)

var (
	ErrEventNotFound = errors.New("event not found")
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	ListBySport(ctx context.Context, sport string) ([]models.Event, error)
	Delete(ctx context.Context, id int) error
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

// current_players считается подзапросом, отдельной колонки в таблице нет.
const eventSelectColumns = `
	e.id, e.name, e.sport, e.location, e.notes, e.max_players, e.created_at, e.event_date,
	(SELECT COUNT(*) FROM event_participants p WHERE p.event_id = e.id) AS current_players`

func (r *postgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `INSERT INTO events (name, sport, location, notes, max_players, event_date)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Name,
		event.Sport,
		event.Location,
		event.Notes,
		event.MaxPlayers,
		event.EventDate,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return err
	}
	event.CurrentPlayers = 0
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT ` + eventSelectColumns + ` FROM events e WHERE e.id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *postgresEventRepository) ListBySport(ctx context.Context, sport string) ([]models.Event, error) {
	query := `SELECT ` + eventSelectColumns + `
			  FROM events e
			  WHERE e.sport = $1
			  ORDER BY e.event_date ASC NULLS LAST, e.created_at ASC, e.id ASC`

	rows, err := r.db.QueryContext(ctx, query, sport)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		event, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func scanEvent(row scanner) (*models.Event, error) {
	var event models.Event
	var notes sql.NullString
	var eventDate sql.NullTime

	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Sport,
		&event.Location,
		&notes,
		&event.MaxPlayers,
		&event.CreatedAt,
		&eventDate,
		&event.CurrentPlayers,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		event.Notes = &notes.String
	}
	if eventDate.Valid {
		event.EventDate = &eventDate.Time
	}
	return &event, nil
}
