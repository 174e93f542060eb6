package core

import "github.com/google/uuid"

// Identity uniquely tags engine-owned objects such as assets and
// GPU resources.
type Identity = uuid.UUID

var NilIdentity = uuid.Nil

func NewIdentity() Identity {
	return uuid.New()
}
