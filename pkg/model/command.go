package model

import "github.com/philipparndt/gostruct/pkg/geometry"

// Command describes a mutation requested from the store. The scene never
// writes to the store itself, it returns commands instead.
type Command interface {
	isCommand()
}

// CreateSolid asks the store to add a new solid
type CreateSolid struct {
	Kind     ShapeKind
	Dims     Dimensions
	Position geometry.Vector3
}

// UpdateSolidTransform asks the store to move a solid
type UpdateSolidTransform struct {
	ID       string
	Position geometry.Vector3
}

// SetSelection replaces the selection, nil clears it
type SetSelection struct {
	Selection *Selection
}

// ClearCreationMode disarms creation
type ClearCreationMode struct{}

func (CreateSolid) isCommand()          {}
func (UpdateSolidTransform) isCommand() {}
func (SetSelection) isCommand()         {}
func (ClearCreationMode) isCommand()    {}
