package component

// TransitionJob interpolates an entity's Transform from Start to Target over
// Duration seconds. An entity holds at most one; adding another replaces it.
type TransitionJob struct {
	Start    Transform
	Target   Transform
	Duration float64
	Elapsed  float64
}

var TransitionJobComponent = NewComponent[TransitionJob]()
