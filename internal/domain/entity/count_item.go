package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountItem es un registro de conteo: la cantidad contada de un producto en
// una sala dentro de una sesión. La tripleta (SessionID, ProductID, RoomID)
// es única por sesión. Value es snapshot: cantidad * valor unitario del
// producto al momento de escribir.
type CountItem struct {
	ID              string
	SessionID       string
	ProductID       string
	RoomID          string
	Quantity        decimal.Decimal
	Value           decimal.Decimal
	CountedByUserID string
	CountedAt       time.Time
}
