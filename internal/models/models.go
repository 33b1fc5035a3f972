package models

// Entity is implemented by every persisted record; the generic
// repository relies on it to report generated identifiers.
type Entity interface {
	GetID() uint
}
