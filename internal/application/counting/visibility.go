package counting

import "github.com/jhoicas/conteo-api/internal/domain/entity"

// Caller identidad explícita del llamador, propagada en cada caso de uso.
// Nada de estado ambiente: quien llama siempre se declara.
type Caller struct {
	ID   string
	Role string
}

// CanManageSessions indica si el rol puede crear, cambiar de estado o
// eliminar sesiones (solo admin y manager, sin importar propiedad).
func CanManageSessions(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleManager
}

// CanViewSession predicado de visibilidad de lectura: admin y manager ven
// todo; un rol user solo ve sesiones que creó o donde contó al menos un item
// (participated). El mismo predicado filtra los listados.
func CanViewSession(caller Caller, session *entity.CountSession, participated bool) bool {
	if CanManageSessions(caller.Role) {
		return true
	}
	return session.CreatedByUserID == caller.ID || participated
}

// CanSubmitItems predicado de escritura del ledger: admin y manager escriben
// en cualquier sesión; un rol user solo en sesiones que él mismo creó (haber
// contado en una sesión ajena da lectura, no escritura).
func CanSubmitItems(caller Caller, session *entity.CountSession) bool {
	if CanManageSessions(caller.Role) {
		return true
	}
	return session.CreatedByUserID == caller.ID
}
