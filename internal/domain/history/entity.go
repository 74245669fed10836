package history

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the stored prediction types
type Kind string

const (
	KindCycle Kind = "cycle"
	KindPCOS  Kind = "pcos"
)

// Entry is a completed prediction stored for later review
type Entry struct {
	ID           uuid.UUID `db:"id"`
	Kind         Kind      `db:"kind"`
	ModelVersion string    `db:"model_version"`
	Confidence   float64   `db:"confidence"`
	Payload      []byte    `db:"payload"`
	CreatedAt    time.Time `db:"created_at"`
}
