package repository

import "github.com/jhoicas/conteo-api/internal/domain/entity"

// CountSessionRepository define el puerto de persistencia para CountSession (DIP).
type CountSessionRepository interface {
	Create(session *entity.CountSession) error
	GetByID(id string) (*entity.CountSession, error)
	// List devuelve todas las sesiones, más recientes primero.
	List() ([]*entity.CountSession, error)
	// ListByParticipant devuelve, más recientes primero, las sesiones creadas
	// por el usuario o donde el usuario contó al menos un item.
	ListByParticipant(userID string) ([]*entity.CountSession, error)
	Update(session *entity.CountSession) error
	Delete(id string) error
}
