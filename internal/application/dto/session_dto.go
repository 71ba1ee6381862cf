package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSessionRequest entrada para crear una sesión de conteo.
// RoomIDs es opcional: si viene, se siembra un item en cero por cada producto
// asignado a cada sala.
type CreateSessionRequest struct {
	Name    string   `json:"name" validate:"required,min=1,max=200"`
	RoomIDs []string `json:"room_ids"`
}

// UpdateSessionRequest entrada para actualizar nombre y/o estado de una sesión.
type UpdateSessionRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Status *string `json:"status" validate:"omitempty,oneof=draft in_progress completed finalized"`
}

// SubmitItemRequest un item del lote: con ID es actualización; con ProductID y
// RoomID es creación. Quantity siempre es obligatoria y no negativa.
type SubmitItemRequest struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	RoomID    string          `json:"room_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SubmitItemsRequest lote de conteos contra una sesión. Se aplica completo o
// no se aplica nada.
type SubmitItemsRequest struct {
	Items []SubmitItemRequest `json:"items"`
}

// UserRef proyección mínima de un usuario en respuestas (sin credenciales).
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ProductRef proyección de un producto en respuestas de items.
type ProductRef struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitValue decimal.Decimal `json:"unit_value"`
}

// RoomRef proyección de una sala en respuestas de items.
type RoomRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CountItemResponse salida de un item de conteo con sus referencias resueltas.
type CountItemResponse struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Product   ProductRef      `json:"product"`
	Room      RoomRef         `json:"room"`
	Quantity  decimal.Decimal `json:"quantity"`
	Value     decimal.Decimal `json:"value"`
	CountedBy *UserRef        `json:"counted_by,omitempty"`
	CountedAt time.Time       `json:"counted_at"`
}

// SessionResponse salida de una sesión. Items solo se incluye en el detalle;
// en listados va ItemCount.
type SessionResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Status    string              `json:"status"`
	CreatedBy *UserRef            `json:"created_by,omitempty"`
	StartTime *time.Time          `json:"start_time,omitempty"`
	EndTime   *time.Time          `json:"end_time,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	ItemCount int                 `json:"item_count"`
	Items     []CountItemResponse `json:"items,omitempty"`
}

// SessionListResponse listado de sesiones, más recientes primero.
type SessionListResponse struct {
	Items []SessionResponse `json:"items"`
}
