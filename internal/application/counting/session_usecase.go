package counting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/conteo-api/internal/application/dto"
	"github.com/jhoicas/conteo-api/internal/domain"
	"github.com/jhoicas/conteo-api/internal/domain/entity"
	"github.com/jhoicas/conteo-api/internal/domain/repository"
)

// SessionUseCase casos de uso del ciclo de vida de sesiones de conteo:
// crear (con siembra opcional por salas), listar con alcance por rol,
// detalle, actualización administrativa y borrado.
type SessionUseCase struct {
	txRunner     TxRunner
	sessionRepo  repository.CountSessionRepository
	itemRepo     repository.CountItemRepository
	productRepo  repository.ProductRepository
	roomRepo     repository.RoomRepository
	roomProducts repository.RoomProductRepository
	userRepo     repository.UserRepository
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	txRunner TxRunner,
	sessionRepo repository.CountSessionRepository,
	itemRepo repository.CountItemRepository,
	productRepo repository.ProductRepository,
	roomRepo repository.RoomRepository,
	roomProducts repository.RoomProductRepository,
	userRepo repository.UserRepository,
) *SessionUseCase {
	return &SessionUseCase{
		txRunner:     txRunner,
		sessionRepo:  sessionRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		roomRepo:     roomRepo,
		roomProducts: roomProducts,
		userRepo:     userRepo,
	}
}

// Create crea una sesión en draft. Si vienen salas, siembra un item en cero
// por cada producto asignado a cada sala (en orden de display_order),
// atribuido al creador. Sesión e items se escriben en una sola transacción.
func (uc *SessionUseCase) Create(ctx context.Context, caller Caller, in dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if !CanManageSessions(caller.Role) {
		return nil, fmt.Errorf("%w: se requiere rol admin o manager", domain.ErrForbidden)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre de la sesión es requerido", domain.ErrInvalidInput)
	}

	now := time.Now()
	session := &entity.CountSession{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Status:          entity.StatusDraft,
		CreatedByUserID: caller.ID,
		CreatedAt:       now,
	}

	// Resolver la siembra antes de abrir la transacción: validar salas y
	// materializar un item en cero por cada asignación producto-sala.
	seeds, err := uc.buildSeedItems(session.ID, caller.ID, in.RoomIDs, now)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(sessionRepo repository.CountSessionRepository, itemRepo repository.CountItemRepository) error {
		if err := sessionRepo.Create(session); err != nil {
			return err
		}
		for _, item := range seeds {
			if err := itemRepo.Create(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.sessionDetail(session)
}

// buildSeedItems arma los items iniciales (cantidad y valor en cero) para las
// salas indicadas. La clave incluye la sala, así que un producto asignado a
// dos salas sembradas no colisiona.
func (uc *SessionUseCase) buildSeedItems(sessionID, creatorID string, roomIDs []string, now time.Time) ([]*entity.CountItem, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	rooms, err := uc.roomRepo.GetByIDs(roomIDs)
	if err != nil {
		return nil, err
	}
	var seeds []*entity.CountItem
	seen := make(map[string]bool, len(roomIDs))
	for _, roomID := range roomIDs {
		if seen[roomID] {
			continue
		}
		seen[roomID] = true
		if rooms[roomID] == nil {
			return nil, fmt.Errorf("%w: sala no encontrada: %s", domain.ErrInvalidInput, roomID)
		}
		assignments, err := uc.roomProducts.ListByRoom(roomID)
		if err != nil {
			return nil, err
		}
		for _, rp := range assignments {
			seeds = append(seeds, &entity.CountItem{
				ID:              uuid.New().String(),
				SessionID:       sessionID,
				ProductID:       rp.ProductID,
				RoomID:          rp.RoomID,
				CountedByUserID: creatorID,
				CountedAt:       now,
			})
		}
	}
	return seeds, nil
}

// List lista sesiones más recientes primero, acotadas por el predicado de
// visibilidad: admin/manager ven todo; un user solo donde creó o participó.
func (uc *SessionUseCase) List(caller Caller) (*dto.SessionListResponse, error) {
	var sessions []*entity.CountSession
	var err error
	if CanManageSessions(caller.Role) {
		sessions, err = uc.sessionRepo.List()
	} else {
		sessions, err = uc.sessionRepo.ListByParticipant(caller.ID)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(sessions))
	creatorIDs := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
		creatorIDs = append(creatorIDs, s.CreatedByUserID)
	}
	counts, err := uc.itemRepo.CountBySessions(ids)
	if err != nil {
		return nil, err
	}
	creators, err := uc.userRepo.GetByIDs(creatorIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, toSessionResponse(s, creators[s.CreatedByUserID], counts[s.ID]))
	}
	return &dto.SessionListResponse{Items: items}, nil
}

// GetByID devuelve la sesión con sus items. Si la sesión no existe es
// ErrNotFound; si existe pero el llamador no la ve, ErrForbidden (distinguir
// "no existe" de "no es tuya").
func (uc *SessionUseCase) GetByID(caller Caller, id string) (*dto.SessionResponse, error) {
	session, err := uc.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: sesión de conteo %s", domain.ErrNotFound, id)
	}
	participated := false
	if !CanManageSessions(caller.Role) {
		participated, err = uc.itemRepo.ExistsCountedBy(id, caller.ID)
		if err != nil {
			return nil, err
		}
	}
	if !CanViewSession(caller, session, participated) {
		return nil, fmt.Errorf("%w: no tienes acceso a esta sesión de conteo", domain.ErrForbidden)
	}
	return uc.sessionDetail(session)
}

// Update actualiza nombre y/o estado (solo admin/manager). Una sesión
// finalized no admite ninguna mutación, ni siquiera de nombre.
func (uc *SessionUseCase) Update(ctx context.Context, caller Caller, id string, in dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	if !CanManageSessions(caller.Role) {
		return nil, fmt.Errorf("%w: se requiere rol admin o manager", domain.ErrForbidden)
	}
	session, err := uc.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: sesión de conteo %s", domain.ErrNotFound, id)
	}
	if session.Status.Terminal() {
		return nil, fmt.Errorf("%w: la sesión está finalizada", domain.ErrConflict)
	}

	if in.Status != nil {
		target, err := entity.ParseSessionStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if err := session.ApplyStatus(target, time.Now()); err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
		}
		session.Name = *in.Name
	}

	if err := uc.sessionRepo.Update(session); err != nil {
		return nil, err
	}
	creator, err := uc.userRepo.GetByID(session.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	count, err := uc.itemRepo.CountBySessions([]string{session.ID})
	if err != nil {
		return nil, err
	}
	out := toSessionResponse(session, creator, count[session.ID])
	return &out, nil
}

// Delete elimina la sesión y sus items en una sola transacción (solo
// admin/manager). Las sesiones finalized nunca se borran.
func (uc *SessionUseCase) Delete(ctx context.Context, caller Caller, id string) error {
	if !CanManageSessions(caller.Role) {
		return fmt.Errorf("%w: se requiere rol admin o manager", domain.ErrForbidden)
	}
	session, err := uc.sessionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("%w: sesión de conteo %s", domain.ErrNotFound, id)
	}
	if session.Status.Terminal() {
		return fmt.Errorf("%w: no se pueden eliminar sesiones finalizadas", domain.ErrInvalidInput)
	}
	return uc.txRunner.Run(ctx, func(sessionRepo repository.CountSessionRepository, itemRepo repository.CountItemRepository) error {
		if err := itemRepo.DeleteBySession(id); err != nil {
			return err
		}
		return sessionRepo.Delete(id)
	})
}

// sessionDetail arma la respuesta de detalle: sesión + items con sus
// proyecciones de producto, sala y usuario resueltas en lote.
func (uc *SessionUseCase) sessionDetail(session *entity.CountSession) (*dto.SessionResponse, error) {
	items, err := uc.itemRepo.ListBySession(session.ID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(items))
	roomIDs := make([]string, 0, len(items))
	userIDs := []string{session.CreatedByUserID}
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
		roomIDs = append(roomIDs, it.RoomID)
		userIDs = append(userIDs, it.CountedByUserID)
	}

	products, err := uc.productRepo.GetByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := uc.roomRepo.GetByIDs(roomIDs)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.GetByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	out := toSessionResponse(session, users[session.CreatedByUserID], len(items))
	out.Items = make([]dto.CountItemResponse, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it, products[it.ProductID], rooms[it.RoomID], users[it.CountedByUserID]))
	}
	return &out, nil
}
