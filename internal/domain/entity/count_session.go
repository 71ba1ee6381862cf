package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/conteo-api/internal/domain"
)

// SessionStatus es el estado del ciclo de vida de una sesión de conteo.
// Tipo cerrado: solo los cuatro valores declarados abajo son válidos.
type SessionStatus string

// Estados del ciclo de vida: draft → in_progress → completed → finalized.
const (
	StatusDraft      SessionStatus = "draft"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusFinalized  SessionStatus = "finalized"
)

// allowedTransitions tabla explícita de transiciones aceptadas en una
// actualización administrativa. Un admin/manager puede mover la sesión a
// cualquier estado (incluso hacia atrás, como corrección administrativa);
// la única regla dura es que finalized es terminal.
var allowedTransitions = map[SessionStatus]map[SessionStatus]bool{
	StatusDraft:      {StatusDraft: true, StatusInProgress: true, StatusCompleted: true, StatusFinalized: true},
	StatusInProgress: {StatusDraft: true, StatusInProgress: true, StatusCompleted: true, StatusFinalized: true},
	StatusCompleted:  {StatusDraft: true, StatusInProgress: true, StatusCompleted: true, StatusFinalized: true},
	StatusFinalized:  {},
}

// ParseSessionStatus valida un literal de estado recibido del exterior.
func ParseSessionStatus(s string) (SessionStatus, error) {
	switch st := SessionStatus(s); st {
	case StatusDraft, StatusInProgress, StatusCompleted, StatusFinalized:
		return st, nil
	default:
		return "", fmt.Errorf("%w: estado desconocido: %q", domain.ErrInvalidInput, s)
	}
}

// Terminal indica si el estado no admite ninguna mutación posterior.
func (s SessionStatus) Terminal() bool {
	return s == StatusFinalized
}

// CanTransitionTo consulta la tabla de transiciones.
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	return allowedTransitions[s][target]
}

// CountSession es una unidad acotada de trabajo de conteo con ciclo de vida.
// Una vez finalized no se borra ni se muta nunca más.
type CountSession struct {
	ID              string
	Name            string
	Status          SessionStatus
	CreatedByUserID string
	StartTime       *time.Time
	EndTime         *time.Time
	CreatedAt       time.Time
}

// ApplyStatus aplica una transición explícita (administrativa) y estampa los
// tiempos según el destino: in_progress fija StartTime solo si no existía
// (idempotente); completed y finalized refrescan EndTime siempre.
func (cs *CountSession) ApplyStatus(target SessionStatus, now time.Time) error {
	if !cs.Status.CanTransitionTo(target) {
		if cs.Status.Terminal() {
			return fmt.Errorf("%w: la sesión está finalizada", domain.ErrConflict)
		}
		return fmt.Errorf("%w: transición no permitida de %s a %s", domain.ErrInvalidInput, cs.Status, target)
	}
	cs.Status = target
	switch target {
	case StatusInProgress:
		if cs.StartTime == nil {
			t := now
			cs.StartTime = &t
		}
	case StatusCompleted, StatusFinalized:
		t := now
		cs.EndTime = &t
	}
	return nil
}

// StartCounting aplica la transición implícita draft → in_progress que dispara
// el primer conteo registrado. Devuelve true si la sesión cambió; reaplicarla
// sobre una sesión ya en progreso es un no-op.
func (cs *CountSession) StartCounting(now time.Time) bool {
	if cs.Status != StatusDraft {
		return false
	}
	cs.Status = StatusInProgress
	if cs.StartTime == nil {
		t := now
		cs.StartTime = &t
	}
	return true
}
