package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the read-only view of an automaton consumed by the renderer and HUD.
type Sim interface {
	Name() string
	Size() Size
	Cells() []uint8
}
