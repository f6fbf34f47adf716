package maintenance

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("maintenance request not found")
	ErrInvalid  = errors.New("invalid maintenance request")
)

type Status string

const (
	StatusPending    Status = "en_attente"
	StatusInProgress Status = "en_cours"
	StatusResolved   Status = "resolu"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}

	return false
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusInProgress:
		return "En cours"
	case StatusResolved:
		return "Résolu"
	}

	return string(s)
}

type Priority string

const (
	PriorityHigh   Priority = "haute"
	PriorityMedium Priority = "moyenne"
	PriorityLow    Priority = "basse"
)

// Request is a repair reported by a tenant or scheduled by an owner.
type Request struct {
	ID          uuid.UUID
	PropertyID  string
	Property    string
	Type        string
	Title       string
	Description string
	Priority    Priority
	Status      Status
	Date        time.Time
	Cost        int64 // GNF, zero until quoted
}

// Open reports whether the request still needs work.
func (r *Request) Open() bool {
	return r.Status != StatusResolved
}
