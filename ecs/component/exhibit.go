package component

import "image/color"

// ExhibitKind separates animals from plants for drawing only; both share the
// same controller.
type ExhibitKind string

const (
	ExhibitAnimal ExhibitKind = "animal"
	ExhibitPlant  ExhibitKind = "plant"
)

// Exhibit tags an entity that the registry manages.
type Exhibit struct {
	Name string
	Kind ExhibitKind
}

var ExhibitComponent = NewComponent[Exhibit]()

// Appearance is the flat colour an exhibit is drawn with.
type Appearance struct {
	Fill color.NRGBA
}

var AppearanceComponent = NewComponent[Appearance]()
