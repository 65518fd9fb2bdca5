package component

// AnimationClip is a reference to clip data owned by the renderer. Only the
// timing fields are read here.
type AnimationClip struct {
	Name   string
	Frames int
	FPS    float64
	Loop   bool
}

// Animation binds clips to named animator states and tracks the playing one.
type Animation struct {
	Bindings map[string]*AnimationClip
	State    string
	Frame    int
	Timer    float64
	Playing  bool
}

// Clip returns the clip bound to the current state, if any.
func (a *Animation) Clip() *AnimationClip {
	if a == nil || a.Bindings == nil {
		return nil
	}
	return a.Bindings[a.State]
}

var AnimationComponent = NewComponent[Animation]()
