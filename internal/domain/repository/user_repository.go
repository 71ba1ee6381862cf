package repository

import "github.com/jhoicas/conteo-api/internal/domain/entity"

// UserRepository acceso de lectura a usuarios, solo para proyecciones
// (createdBy / countedBy) en las respuestas. Las credenciales no pasan por aquí.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByIDs(ids []string) (map[string]*entity.User, error)
}
