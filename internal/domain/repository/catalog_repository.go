package repository

import "github.com/jhoicas/conteo-api/internal/domain/entity"

// Puertos de solo lectura sobre el catálogo (salas, productos y sus
// asignaciones). El mantenimiento del catálogo es de otro sistema; el motor
// de conteos solo valida existencia y lee valores unitarios.

// ProductRepository acceso de lectura a productos del catálogo.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	GetByIDs(ids []string) (map[string]*entity.Product, error)
}

// RoomRepository acceso de lectura a salas del catálogo.
type RoomRepository interface {
	GetByID(id string) (*entity.Room, error)
	GetByIDs(ids []string) (map[string]*entity.Room, error)
}

// RoomProductRepository acceso de lectura a asignaciones producto-sala.
type RoomProductRepository interface {
	// ListByRoom devuelve las asignaciones de una sala ordenadas por display_order.
	ListByRoom(roomID string) ([]*entity.RoomProduct, error)
}
