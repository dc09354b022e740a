package storage

import "errors"

// ErrNamespaceNotFound is returned by Read when no snapshot exists yet for
// the namespace. Callers treat it as an empty collection.
var ErrNamespaceNotFound = errors.New("storage namespace not found")

// Storage namespaces, one per persisted collection
const (
	NamespacePatients     = "patients-storage"
	NamespaceAppointments = "appointments-storage"
	NamespaceSettings     = "settings-storage"
)

// Store is the key-value persistence collaborator. Each namespace round-trips
// a full record set on every write; the repositories that use it make no
// assumption about the encoding.
type Store interface {
	Read(namespace string, v any) error
	Write(namespace string, v any) error
	Delete(namespace string) error
}
