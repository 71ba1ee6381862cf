package counting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/conteo-api/internal/application/dto"
	"github.com/jhoicas/conteo-api/internal/domain"
	"github.com/jhoicas/conteo-api/internal/domain/counting"
	"github.com/jhoicas/conteo-api/internal/domain/entity"
	"github.com/jhoicas/conteo-api/internal/domain/repository"
)

// SubmitItemsUseCase registra un lote de conteos contra una sesión.
// El lote se procesa en dos fases: una pasada de validación que no escribe
// nada y resuelve cada item (regla de valorización incluida), y un commit
// transaccional único. Un error en cualquier item deja la sesión y el ledger
// exactamente como estaban.
type SubmitItemsUseCase struct {
	txRunner    TxRunner
	sessionRepo repository.CountSessionRepository
	itemRepo    repository.CountItemRepository
	productRepo repository.ProductRepository
	roomRepo    repository.RoomRepository
	userRepo    repository.UserRepository
}

// NewSubmitItemsUseCase construye el caso de uso.
func NewSubmitItemsUseCase(
	txRunner TxRunner,
	sessionRepo repository.CountSessionRepository,
	itemRepo repository.CountItemRepository,
	productRepo repository.ProductRepository,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
) *SubmitItemsUseCase {
	return &SubmitItemsUseCase{
		txRunner:    txRunner,
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
	}
}

// plannedWrite un item ya validado y valorizado, listo para escribir, junto
// con sus referencias resueltas para la respuesta.
type plannedWrite struct {
	item     *entity.CountItem
	isCreate bool
	product  *entity.Product
	room     *entity.Room
}

// Submit aplica el lote completo contra la sesión. Devuelve los items
// aplicados, en el orden en que venían, con sus proyecciones resueltas.
// Si la sesión estaba en draft, el mismo commit la avanza a in_progress.
func (uc *SubmitItemsUseCase) Submit(ctx context.Context, caller Caller, sessionID string, in dto.SubmitItemsRequest) ([]dto.CountItemResponse, error) {
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: sesión de conteo %s", domain.ErrNotFound, sessionID)
	}
	if session.Status.Terminal() {
		return nil, fmt.Errorf("%w: no se puede modificar una sesión finalizada", domain.ErrConflict)
	}
	if !CanSubmitItems(caller, session) {
		return nil, fmt.Errorf("%w: no tienes permiso para contar en esta sesión", domain.ErrForbidden)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el arreglo de items es requerido", domain.ErrInvalidInput)
	}

	now := time.Now()
	planned, err := uc.validateBatch(session, caller, in.Items, now)
	if err != nil {
		return nil, err
	}

	// Commit único: todos los items y la (a lo sumo una) transición de estado,
	// o nada. El constraint único de (session, product, room) resuelve la
	// carrera entre dos creaciones concurrentes de la misma tripleta.
	err = uc.txRunner.Run(ctx, func(sessionRepo repository.CountSessionRepository, itemRepo repository.CountItemRepository) error {
		for _, pw := range planned {
			if pw.isCreate {
				if err := itemRepo.Create(pw.item); err != nil {
					return err
				}
			} else if err := itemRepo.Update(pw.item); err != nil {
				return err
			}
		}
		if session.StartCounting(now) {
			return sessionRepo.Update(session)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	countedBy, err := uc.userRepo.GetByID(caller.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CountItemResponse, 0, len(planned))
	for _, pw := range planned {
		out = append(out, toItemResponse(pw.item, pw.product, pw.room, countedBy))
	}
	return out, nil
}

// validateBatch la pasada de pre-validación: resuelve y valoriza cada item
// sin efectos secundarios. Cualquier item inválido aborta el lote entero.
func (uc *SubmitItemsUseCase) validateBatch(session *entity.CountSession, caller Caller, items []dto.SubmitItemRequest, now time.Time) ([]*plannedWrite, error) {
	planned := make([]*plannedWrite, 0, len(items))
	// Detecta duplicados dentro del propio lote, además de los ya persistidos.
	pairs := make(map[string]bool, len(items))

	for _, req := range items {
		if req.Quantity.IsNegative() {
			return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
		}
		switch {
		case req.ID != "":
			pw, err := uc.planUpdate(session, caller, req, now)
			if err != nil {
				return nil, err
			}
			planned = append(planned, pw)
		case req.ProductID != "" && req.RoomID != "":
			key := req.ProductID + "|" + req.RoomID
			if pairs[key] {
				return nil, fmt.Errorf("%w: ya existe un conteo para este producto y sala", domain.ErrDuplicate)
			}
			pairs[key] = true
			pw, err := uc.planCreate(session, caller, req, now)
			if err != nil {
				return nil, err
			}
			planned = append(planned, pw)
		default:
			return nil, fmt.Errorf("%w: cada item requiere id, o product_id y room_id", domain.ErrInvalidInput)
		}
	}
	return planned, nil
}

// planUpdate resuelve una actualización: el item debe existir y pertenecer a
// la sesión; el valor se recalcula con el valor unitario vigente del producto.
func (uc *SubmitItemsUseCase) planUpdate(session *entity.CountSession, caller Caller, req dto.SubmitItemRequest, now time.Time) (*plannedWrite, error) {
	existing, err := uc.itemRepo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.SessionID != session.ID {
		return nil, fmt.Errorf("%w: item inválido: %s", domain.ErrInvalidInput, req.ID)
	}
	product, err := uc.productRepo.GetByID(existing.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto no encontrado para el item: %s", domain.ErrInvalidInput, req.ID)
	}
	room, err := uc.roomRepo.GetByID(existing.RoomID)
	if err != nil {
		return nil, err
	}
	value, err := counting.ItemValue(req.Quantity, product.UnitValue)
	if err != nil {
		return nil, err
	}
	updated := *existing
	updated.Quantity = req.Quantity
	updated.Value = value
	updated.CountedByUserID = caller.ID
	updated.CountedAt = now
	return &plannedWrite{item: &updated, product: product, room: room}, nil
}

// planCreate resuelve una creación: producto y sala deben existir (el error
// nombra el id faltante) y la tripleta no puede estar ya en el ledger.
func (uc *SubmitItemsUseCase) planCreate(session *entity.CountSession, caller Caller, req dto.SubmitItemRequest, now time.Time) (*plannedWrite, error) {
	product, err := uc.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto no encontrado: %s", domain.ErrInvalidInput, req.ProductID)
	}
	room, err := uc.roomRepo.GetByID(req.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("%w: sala no encontrada: %s", domain.ErrInvalidInput, req.RoomID)
	}
	existing, err := uc.itemRepo.GetBySessionProductRoom(session.ID, req.ProductID, req.RoomID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un conteo para este producto y sala", domain.ErrDuplicate)
	}
	value, err := counting.ItemValue(req.Quantity, product.UnitValue)
	if err != nil {
		return nil, err
	}
	item := &entity.CountItem{
		ID:              uuid.New().String(),
		SessionID:       session.ID,
		ProductID:       req.ProductID,
		RoomID:          req.RoomID,
		Quantity:        req.Quantity,
		Value:           value,
		CountedByUserID: caller.ID,
		CountedAt:       now,
	}
	return &plannedWrite{item: item, isCreate: true, product: product, room: room}, nil
}
