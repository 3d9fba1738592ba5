package upsert

import "errors"

var (
	// ErrInvalidTransition indicates an illegal save phase change.
	ErrInvalidTransition = errors.New("invalid save phase transition")
	// ErrIDCollision indicates the id generator produced an id already in use.
	ErrIDCollision = errors.New("id generator collision")
)
