package gen

import (
	"github.com/google/uuid"
)

type UUIDGenerator func() uuid.UUID

func UUID() UUIDGenerator {
	return func() uuid.UUID {
		return uuid.New()
	}
}

// Static always yields id. Useful for deterministic request ids in tests.
func Static(id uuid.UUID) UUIDGenerator {
	return func() uuid.UUID {
		return id
	}
}

func (g UUIDGenerator) Next() uuid.UUID {
	if g == nil {
		return uuid.Nil
	}

	return g()
}

// NextString returns the next id in its canonical string form.
func (g UUIDGenerator) NextString() string {
	return g.Next().String()
}
