package entity

// RoomProduct es la asignación de un producto a una sala, con orden de
// despliegue para el conteo guiado. Propiedad del catálogo; el motor solo
// la lee al sembrar sesiones.
type RoomProduct struct {
	ID           string
	RoomID       string
	ProductID    string
	DisplayOrder int
}
