package repository

import "github.com/jhoicas/conteo-api/internal/domain/entity"

// CountItemRepository define el puerto de persistencia para CountItem (DIP).
// La implementación debe respaldar la unicidad de (session_id, product_id,
// room_id) con un constraint único y devolver domain.ErrDuplicate al violarlo.
type CountItemRepository interface {
	Create(item *entity.CountItem) error
	Update(item *entity.CountItem) error
	GetByID(id string) (*entity.CountItem, error)
	GetBySessionProductRoom(sessionID, productID, roomID string) (*entity.CountItem, error)
	ListBySession(sessionID string) ([]*entity.CountItem, error)
	// CountBySessions devuelve el número de items por sesión (para listados).
	CountBySessions(sessionIDs []string) (map[string]int, error)
	// ExistsCountedBy indica si el usuario contó al menos un item en la sesión.
	ExistsCountedBy(sessionID, userID string) (bool, error)
	DeleteBySession(sessionID string) error
}
