package counting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/conteo-api/internal/domain"
)

// ItemValue implementa la regla de valorización (servicio de dominio).
// Valor = Cantidad * ValorUnitario, redondeado a 2 decimales en aritmética
// decimal exacta para evitar deriva de centavos en escrituras repetidas.
// Rechaza cantidades negativas; no hay otros casos de error.
func ItemValue(quantity, unitValue decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	return quantity.Mul(unitValue).Round(2), nil
}
