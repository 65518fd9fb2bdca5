package component

// Visibility controls whether an entity is drawn and whether its hit surface
// accepts pointer queries. The two are toggled independently.
type Visibility struct {
	Visible      bool
	Interactable bool
}

var VisibilityComponent = NewComponent[Visibility]()
