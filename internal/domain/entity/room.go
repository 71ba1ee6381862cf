package entity

import "time"

// Room representa una sala o área física del establecimiento donde se cuenta
// inventario. El catálogo de salas es de solo lectura para el motor de conteos.
type Room struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
