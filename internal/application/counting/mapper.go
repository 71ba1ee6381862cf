package counting

import (
	"github.com/jhoicas/conteo-api/internal/application/dto"
	"github.com/jhoicas/conteo-api/internal/domain/entity"
)

func toUserRef(u *entity.User) *dto.UserRef {
	if u == nil {
		return nil
	}
	return &dto.UserRef{ID: u.ID, Username: u.Username, Role: u.Role}
}

func toProductRef(p *entity.Product) dto.ProductRef {
	if p == nil {
		return dto.ProductRef{}
	}
	return dto.ProductRef{ID: p.ID, Name: p.Name, UnitValue: p.UnitValue}
}

func toRoomRef(r *entity.Room) dto.RoomRef {
	if r == nil {
		return dto.RoomRef{}
	}
	return dto.RoomRef{ID: r.ID, Name: r.Name}
}

func toItemResponse(it *entity.CountItem, product *entity.Product, room *entity.Room, countedBy *entity.User) dto.CountItemResponse {
	return dto.CountItemResponse{
		ID:        it.ID,
		SessionID: it.SessionID,
		Product:   toProductRef(product),
		Room:      toRoomRef(room),
		Quantity:  it.Quantity,
		Value:     it.Value,
		CountedBy: toUserRef(countedBy),
		CountedAt: it.CountedAt,
	}
}

func toSessionResponse(s *entity.CountSession, createdBy *entity.User, itemCount int) dto.SessionResponse {
	return dto.SessionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Status:    string(s.Status),
		CreatedBy: toUserRef(createdBy),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		CreatedAt: s.CreatedAt,
		ItemCount: itemCount,
	}
}
