package counting

import (
	"context"

	"github.com/jhoicas/conteo-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a la
// tx: o todo lo escrito dentro de fn queda visible, o nada. Es la garantía
// sobre la que descansan el lote atómico de conteos y el borrado en cascada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sessionRepo repository.CountSessionRepository,
		itemRepo repository.CountItemRepository,
	) error) error
}
