package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. UnitValue es el valor unitario
// vigente; los conteos guardan el valor calculado al momento de escribir
// (snapshot), no un join en vivo contra este campo.
type Product struct {
	ID          string
	Name        string
	Description string
	UnitValue   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
