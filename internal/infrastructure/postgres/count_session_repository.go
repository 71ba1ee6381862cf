package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/conteo-api/internal/domain/entity"
	"github.com/jhoicas/conteo-api/internal/domain/repository"
)

var _ repository.CountSessionRepository = (*CountSessionRepo)(nil)

// CountSessionRepo implementación del puerto CountSessionRepository sobre PostgreSQL (usable con pool o tx).
type CountSessionRepo struct {
	q Querier
}

// NewCountSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountSessionRepository(q Querier) *CountSessionRepo {
	return &CountSessionRepo{q: q}
}

const sessionColumns = `id, name, status, created_by_user_id, start_time, end_time, created_at`

// Create persiste una nueva sesión de conteo.
func (r *CountSessionRepo) Create(session *entity.CountSession) error {
	query := `
		INSERT INTO count_sessions (id, name, status, created_by_user_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.Name, string(session.Status), session.CreatedByUserID,
		session.StartTime, session.EndTime, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert count session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID. Devuelve nil si no existe.
func (r *CountSessionRepo) GetByID(id string) (*entity.CountSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM count_sessions WHERE id = $1`
	s, err := scanSession(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count session: %w", err)
	}
	return s, nil
}

// List devuelve todas las sesiones, más recientes primero.
func (r *CountSessionRepo) List() ([]*entity.CountSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM count_sessions ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list count sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

// ListByParticipant devuelve las sesiones creadas por el usuario o donde el
// usuario registró al menos un conteo, más recientes primero.
func (r *CountSessionRepo) ListByParticipant(userID string) ([]*entity.CountSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM count_sessions s
		WHERE s.created_by_user_id = $1
		   OR EXISTS (
			SELECT 1 FROM count_items ci
			WHERE ci.session_id = s.id AND ci.counted_by_user_id = $1
		   )
		ORDER BY s.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list count sessions by participant: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

// Update actualiza nombre, estado y tiempos de la sesión.
func (r *CountSessionRepo) Update(session *entity.CountSession) error {
	query := `
		UPDATE count_sessions
		SET name = $2, status = $3, start_time = $4, end_time = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.Name, string(session.Status), session.StartTime, session.EndTime,
	)
	if err != nil {
		return fmt.Errorf("update count session: %w", err)
	}
	return nil
}

// Delete elimina una sesión por ID (los items se borran antes, misma tx).
func (r *CountSessionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM count_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete count session: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*entity.CountSession, error) {
	var s entity.CountSession
	var status string
	if err := row.Scan(&s.ID, &s.Name, &status, &s.CreatedByUserID, &s.StartTime, &s.EndTime, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.SessionStatus(status)
	return &s, nil
}

func collectSessions(rows pgx.Rows) ([]*entity.CountSession, error) {
	var list []*entity.CountSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan count session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
