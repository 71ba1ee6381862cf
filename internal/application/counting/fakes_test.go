package counting_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/conteo-api/internal/application/counting"
	"github.com/jhoicas/conteo-api/internal/domain"
	"github.com/jhoicas/conteo-api/internal/domain/entity"
	"github.com/jhoicas/conteo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia. Respetan los contratos
// que los casos de uso asumen: nil cuando no existe, ErrDuplicate al violar
// la tripleta única y rollback del TxRunner si el callback falla.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	sessions     map[string]*entity.CountSession
	items        map[string]*entity.CountItem
	itemOrder    []string
	products     map[string]*entity.Product
	rooms        map[string]*entity.Room
	roomProducts map[string][]*entity.RoomProduct
	users        map[string]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		sessions:     make(map[string]*entity.CountSession),
		items:        make(map[string]*entity.CountItem),
		products:     make(map[string]*entity.Product),
		rooms:        make(map[string]*entity.Room),
		roomProducts: make(map[string][]*entity.RoomProduct),
		users:        make(map[string]*entity.User),
	}
}

func (st *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range st.sessions {
		s := *v
		cp.sessions[k] = &s
	}
	for k, v := range st.items {
		it := *v
		cp.items[k] = &it
	}
	cp.itemOrder = append([]string(nil), st.itemOrder...)
	cp.products = st.products
	cp.rooms = st.rooms
	cp.roomProducts = st.roomProducts
	cp.users = st.users
	return cp
}

func (st *memStore) restore(from *memStore) {
	st.sessions = from.sessions
	st.items = from.items
	st.itemOrder = from.itemOrder
}

// ─── CountSessionRepository ──────────────────────────────────────────────────

type memSessionRepo struct{ st *memStore }

func (r *memSessionRepo) Create(s *entity.CountSession) error {
	cp := *s
	r.st.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepo) GetByID(id string) (*entity.CountSession, error) {
	s, ok := r.st.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSessionRepo) List() ([]*entity.CountSession, error) {
	out := make([]*entity.CountSession, 0, len(r.st.sessions))
	for _, s := range r.st.sessions {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memSessionRepo) ListByParticipant(userID string) ([]*entity.CountSession, error) {
	all, _ := r.List()
	var out []*entity.CountSession
	for _, s := range all {
		if s.CreatedByUserID == userID {
			out = append(out, s)
			continue
		}
		for _, it := range r.st.items {
			if it.SessionID == s.ID && it.CountedByUserID == userID {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (r *memSessionRepo) Update(s *entity.CountSession) error {
	if _, ok := r.st.sessions[s.ID]; !ok {
		return fmt.Errorf("update session: %w", domain.ErrNotFound)
	}
	cp := *s
	r.st.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepo) Delete(id string) error {
	delete(r.st.sessions, id)
	return nil
}

// ─── CountItemRepository ─────────────────────────────────────────────────────

type memItemRepo struct{ st *memStore }

func (r *memItemRepo) Create(item *entity.CountItem) error {
	for _, it := range r.st.items {
		if it.SessionID == item.SessionID && it.ProductID == item.ProductID && it.RoomID == item.RoomID {
			return fmt.Errorf("%w: ya existe un conteo para este producto y sala", domain.ErrDuplicate)
		}
	}
	cp := *item
	r.st.items[item.ID] = &cp
	r.st.itemOrder = append(r.st.itemOrder, item.ID)
	return nil
}

func (r *memItemRepo) Update(item *entity.CountItem) error {
	if _, ok := r.st.items[item.ID]; !ok {
		return fmt.Errorf("update item: %w", domain.ErrNotFound)
	}
	cp := *item
	r.st.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.CountItem, error) {
	it, ok := r.st.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetBySessionProductRoom(sessionID, productID, roomID string) (*entity.CountItem, error) {
	for _, it := range r.st.items {
		if it.SessionID == sessionID && it.ProductID == productID && it.RoomID == roomID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) ListBySession(sessionID string) ([]*entity.CountItem, error) {
	var out []*entity.CountItem
	for _, id := range r.st.itemOrder {
		it, ok := r.st.items[id]
		if !ok || it.SessionID != sessionID {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memItemRepo) CountBySessions(sessionIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(sessionIDs))
	for _, id := range sessionIDs {
		for _, it := range r.st.items {
			if it.SessionID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (r *memItemRepo) ExistsCountedBy(sessionID, userID string) (bool, error) {
	for _, it := range r.st.items {
		if it.SessionID == sessionID && it.CountedByUserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memItemRepo) DeleteBySession(sessionID string) error {
	remaining := r.st.itemOrder[:0]
	for _, id := range r.st.itemOrder {
		if it, ok := r.st.items[id]; ok && it.SessionID == sessionID {
			delete(r.st.items, id)
			continue
		}
		remaining = append(remaining, id)
	}
	r.st.itemOrder = remaining
	return nil
}

// ─── Catálogo y usuarios (solo lectura) ──────────────────────────────────────

type memProductRepo struct{ st *memStore }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.st.products[id], nil
}

func (r *memProductRepo) GetByIDs(ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.st.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type memRoomRepo struct{ st *memStore }

func (r *memRoomRepo) GetByID(id string) (*entity.Room, error) {
	return r.st.rooms[id], nil
}

func (r *memRoomRepo) GetByIDs(ids []string) (map[string]*entity.Room, error) {
	out := make(map[string]*entity.Room, len(ids))
	for _, id := range ids {
		if rm, ok := r.st.rooms[id]; ok {
			out[id] = rm
		}
	}
	return out, nil
}

type memRoomProductRepo struct{ st *memStore }

func (r *memRoomProductRepo) ListByRoom(roomID string) ([]*entity.RoomProduct, error) {
	list := append([]*entity.RoomProduct(nil), r.st.roomProducts[roomID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].DisplayOrder < list[j].DisplayOrder })
	return list, nil
}

type memUserRepo struct{ st *memStore }

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	return r.st.users[id], nil
}

func (r *memUserRepo) GetByIDs(ids []string) (map[string]*entity.User, error) {
	out := make(map[string]*entity.User, len(ids))
	for _, id := range ids {
		if u, ok := r.st.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

// memTxRunner imita la garantía todo-o-nada: si fn falla, el estado vuelve
// al snapshot previo.
type memTxRunner struct{ st *memStore }

func (tr *memTxRunner) Run(_ context.Context, fn func(
	sessionRepo repository.CountSessionRepository,
	itemRepo repository.CountItemRepository,
) error) error {
	before := tr.st.snapshot()
	if err := fn(&memSessionRepo{st: tr.st}, &memItemRepo{st: tr.st}); err != nil {
		tr.st.restore(before)
		return err
	}
	return nil
}

// ─── Fixture común ───────────────────────────────────────────────────────────

const (
	adminID    = "u-admin"
	managerID  = "u-manager"
	counterID  = "u-counter"
	outsiderID = "u-outsider"

	kitchenID = "room-kitchen"
	barID     = "room-bar"

	ginID   = "prod-gin"
	ronID   = "prod-ron"
	vodkaID = "prod-vodka"
)

// newUseCases construye los casos de uso sobre el store en memoria.
func newUseCases(st *memStore) (*counting.SessionUseCase, *counting.SubmitItemsUseCase) {
	tx := &memTxRunner{st: st}
	sessions := &memSessionRepo{st: st}
	items := &memItemRepo{st: st}
	products := &memProductRepo{st: st}
	rooms := &memRoomRepo{st: st}
	roomProducts := &memRoomProductRepo{st: st}
	users := &memUserRepo{st: st}
	return counting.NewSessionUseCase(tx, sessions, items, products, rooms, roomProducts, users),
		counting.NewSubmitItemsUseCase(tx, sessions, items, products, rooms, users)
}

// newFixture arma un store con catálogo y usuarios de prueba.
func newFixture() *memStore {
	st := newMemStore()
	now := time.Now()

	st.users[adminID] = &entity.User{ID: adminID, Username: "admin", Role: entity.RoleAdmin, Active: true}
	st.users[managerID] = &entity.User{ID: managerID, Username: "manager", Role: entity.RoleManager, Active: true}
	st.users[counterID] = &entity.User{ID: counterID, Username: "counter", Role: entity.RoleUser, Active: true}
	st.users[outsiderID] = &entity.User{ID: outsiderID, Username: "outsider", Role: entity.RoleUser, Active: true}

	st.rooms[kitchenID] = &entity.Room{ID: kitchenID, Name: "Cocina", CreatedAt: now}
	st.rooms[barID] = &entity.Room{ID: barID, Name: "Bar", CreatedAt: now}

	st.products[ginID] = &entity.Product{ID: ginID, Name: "Ginebra", UnitValue: decimal.RequireFromString("2.50"), CreatedAt: now}
	st.products[ronID] = &entity.Product{ID: ronID, Name: "Ron", UnitValue: decimal.RequireFromString("18.90"), CreatedAt: now}
	st.products[vodkaID] = &entity.Product{ID: vodkaID, Name: "Vodka", UnitValue: decimal.RequireFromString("12.00"), CreatedAt: now}

	st.roomProducts[kitchenID] = []*entity.RoomProduct{
		{ID: "rp-1", RoomID: kitchenID, ProductID: ginID, DisplayOrder: 1},
		{ID: "rp-2", RoomID: kitchenID, ProductID: ronID, DisplayOrder: 2},
	}
	st.roomProducts[barID] = []*entity.RoomProduct{
		{ID: "rp-3", RoomID: barID, ProductID: ginID, DisplayOrder: 1},
		{ID: "rp-4", RoomID: barID, ProductID: vodkaID, DisplayOrder: 2},
	}

	return st
}
