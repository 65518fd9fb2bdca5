package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// TransformComponentSpec is a pose in anchor space. Rotation is Euler
// degrees; zero scales default to 1.
type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Yaw    float64 `yaml:"yaw"`
	Pitch  float64 `yaml:"pitch"`
	Roll   float64 `yaml:"roll"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
	ScaleZ float64 `yaml:"scale_z"`
}

type DescriptorComponentSpec struct {
	Kind           string `yaml:"kind"`
	Name           string `yaml:"name"`
	LocalName      string `yaml:"local_name"`
	ScientificName string `yaml:"scientific_name"`
	Family         string `yaml:"family"`
	Status         string `yaml:"status"`
}

type ClipComponentSpec struct {
	Name   string  `yaml:"name"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

// AnimationComponentSpec lists the idle clip and the action slots. A null
// action entry keeps its slot but has no clip.
type AnimationComponentSpec struct {
	Idle    *ClipComponentSpec   `yaml:"idle"`
	Actions []*ClipComponentSpec `yaml:"actions"`
}

type HitboxComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AudioComponentSpec struct {
	Cue string `yaml:"cue"`
}

// SelectionComponentSpec overrides the configured selection pose tuning for
// one exhibit. Zero keeps the configured value.
type SelectionComponentSpec struct {
	ScaleFactor        float64 `yaml:"scale_factor"`
	TransitionDuration float64 `yaml:"transition_duration"`
}

type ColorComponentSpec struct {
	Fill string `yaml:"fill"`
}
