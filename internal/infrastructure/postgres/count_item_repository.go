package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/conteo-api/internal/domain"
	"github.com/jhoicas/conteo-api/internal/domain/entity"
	"github.com/jhoicas/conteo-api/internal/domain/repository"
)

var _ repository.CountItemRepository = (*CountItemRepo)(nil)

// CountItemRepo implementación del puerto CountItemRepository sobre PostgreSQL (usable con pool o tx).
// La tabla count_items lleva UNIQUE (session_id, product_id, room_id): dos
// creaciones concurrentes de la misma tripleta no pueden colarse ambas.
type CountItemRepo struct {
	q Querier
}

// NewCountItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountItemRepository(q Querier) *CountItemRepo {
	return &CountItemRepo{q: q}
}

const itemColumns = `id, session_id, product_id, room_id, quantity, value, counted_by_user_id, counted_at`

// Create persiste un nuevo item. Una violación del constraint único se
// traduce a domain.ErrDuplicate, nunca se filtra el error crudo de storage.
func (r *CountItemRepo) Create(item *entity.CountItem) error {
	query := `
		INSERT INTO count_items (id, session_id, product_id, room_id, quantity, value, counted_by_user_id, counted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SessionID, item.ProductID, item.RoomID,
		item.Quantity, item.Value, item.CountedByUserID, item.CountedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un conteo para este producto y sala", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert count item: %w", err)
	}
	return nil
}

// Update sobreescribe cantidad, valor y atribución del item (last-write-wins).
func (r *CountItemRepo) Update(item *entity.CountItem) error {
	query := `
		UPDATE count_items
		SET quantity = $2, value = $3, counted_by_user_id = $4, counted_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Quantity, item.Value, item.CountedByUserID, item.CountedAt,
	)
	if err != nil {
		return fmt.Errorf("update count item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID. Devuelve nil si no existe.
func (r *CountItemRepo) GetByID(id string) (*entity.CountItem, error) {
	query := `SELECT ` + itemColumns + ` FROM count_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count item: %w", err)
	}
	return it, nil
}

// GetBySessionProductRoom obtiene el item de la tripleta única, o nil.
func (r *CountItemRepo) GetBySessionProductRoom(sessionID, productID, roomID string) (*entity.CountItem, error) {
	query := `SELECT ` + itemColumns + ` FROM count_items WHERE session_id = $1 AND product_id = $2 AND room_id = $3`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, sessionID, productID, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count item by triple: %w", err)
	}
	return it, nil
}

// ListBySession lista los items de una sesión en orden de registro.
func (r *CountItemRepo) ListBySession(sessionID string) ([]*entity.CountItem, error) {
	query := `SELECT ` + itemColumns + ` FROM count_items WHERE session_id = $1 ORDER BY counted_at, id`
	rows, err := r.q.Query(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list count items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CountItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan count item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// CountBySessions devuelve el número de items por sesión.
func (r *CountItemRepo) CountBySessions(sessionIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}
	query := `SELECT session_id, COUNT(*) FROM count_items WHERE session_id = ANY($1) GROUP BY session_id`
	rows, err := r.q.Query(context.Background(), query, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("count items by session: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan item count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// ExistsCountedBy indica si el usuario registró al menos un conteo en la sesión.
func (r *CountItemRepo) ExistsCountedBy(sessionID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM count_items WHERE session_id = $1 AND counted_by_user_id = $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, sessionID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists counted by: %w", err)
	}
	return exists, nil
}

// DeleteBySession borra todos los items de una sesión (cascade manual, misma tx que el borrado de la sesión).
func (r *CountItemRepo) DeleteBySession(sessionID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM count_items WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete count items: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.CountItem, error) {
	var it entity.CountItem
	if err := row.Scan(&it.ID, &it.SessionID, &it.ProductID, &it.RoomID,
		&it.Quantity, &it.Value, &it.CountedByUserID, &it.CountedAt); err != nil {
		return nil, err
	}
	return &it, nil
}
