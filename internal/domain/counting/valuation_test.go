package counting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/conteo-api/internal/domain"
	"github.com/jhoicas/conteo-api/internal/domain/counting"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// La regla de valorización debe ser exacta en decimal: nada de deriva
// binaria de centavos por más veces que se reescriba un conteo.

func TestItemValue_CalculoExacto(t *testing.T) {
	v, err := counting.ItemValue(dec("10"), dec("2.50"))
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("25.00")), "10 x 2.50 debe ser 25.00, fue %s", v)

	v, err = counting.ItemValue(dec("5"), dec("2.50"))
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("12.50")))
}

func TestItemValue_SinDerivaBinaria(t *testing.T) {
	// 0.1 * 3 en float64 no da 0.3 exacto; en decimal sí.
	v, err := counting.ItemValue(dec("3"), dec("0.1"))
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("0.30")), "3 x 0.1 debe ser exactamente 0.30, fue %s", v)
}

func TestItemValue_RedondeaADosDecimales(t *testing.T) {
	// 7 x 0.1428 = 0.9996 → 1.00
	v, err := counting.ItemValue(dec("7"), dec("0.1428"))
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("1.00")), "0.9996 debe redondear a 1.00, fue %s", v)
}

func TestItemValue_Idempotente(t *testing.T) {
	a, err := counting.ItemValue(dec("3.5"), dec("18.90"))
	require.NoError(t, err)
	b, err := counting.ItemValue(dec("3.5"), dec("18.90"))
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "mismas entradas, mismo valor")
}

func TestItemValue_CantidadCeroValeCero(t *testing.T) {
	v, err := counting.ItemValue(decimal.Zero, dec("18.90"))
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestItemValue_CantidadNegativaRechazada(t *testing.T) {
	_, err := counting.ItemValue(dec("-1"), dec("2.50"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
