package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/conteo-api/internal/domain/entity"
	"github.com/jhoicas/conteo-api/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)
var _ repository.RoomProductRepository = (*RoomProductRepo)(nil)

// RoomRepo lectura de salas del catálogo sobre PostgreSQL.
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

const roomColumns = `id, name, description, created_at, updated_at`

// GetByID obtiene una sala por ID. Devuelve nil si no existe.
func (r *RoomRepo) GetByID(id string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	var room entity.Room
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&room.ID, &room.Name, &room.Description, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// GetByIDs obtiene varias salas en un solo viaje, indexadas por ID.
func (r *RoomRepo) GetByIDs(ids []string) (map[string]*entity.Room, error) {
	out := make(map[string]*entity.Room, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get rooms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		out[room.ID] = &room
	}
	return out, rows.Err()
}

// RoomProductRepo lectura de asignaciones producto-sala sobre PostgreSQL.
type RoomProductRepo struct {
	q Querier
}

// NewRoomProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomProductRepository(q Querier) *RoomProductRepo {
	return &RoomProductRepo{q: q}
}

// ListByRoom lista las asignaciones de una sala ordenadas por display_order.
func (r *RoomProductRepo) ListByRoom(roomID string) ([]*entity.RoomProduct, error) {
	query := `
		SELECT id, room_id, product_id, display_order
		FROM room_products WHERE room_id = $1 ORDER BY display_order`
	rows, err := r.q.Query(context.Background(), query, roomID)
	if err != nil {
		return nil, fmt.Errorf("list room products: %w", err)
	}
	defer rows.Close()
	var list []*entity.RoomProduct
	for rows.Next() {
		var rp entity.RoomProduct
		if err := rows.Scan(&rp.ID, &rp.RoomID, &rp.ProductID, &rp.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan room product: %w", err)
		}
		list = append(list, &rp)
	}
	return list, rows.Err()
}
