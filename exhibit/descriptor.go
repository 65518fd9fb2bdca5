package exhibit

import (
	"fmt"
	"strings"

	"github.com/milk9111/mrexhibit/ecs/component"
)

// ConservationStatus is an IUCN Red List category. Its ordinal indexes the
// detail panel's icon row, so the order is fixed.
type ConservationStatus int

const (
	StatusNotAvailable ConservationStatus = iota
	StatusExtinct
	StatusExtinctInTheWild
	StatusCriticallyEndangered
	StatusEndangered
	StatusVulnerable
	StatusNearThreatened
	StatusLeastConcern
)

var statusCodes = [...]string{"NA", "EX", "EW", "CR", "EN", "VU", "NT", "LC"}

// StatusCount is the number of conservation categories, and icons.
const StatusCount = len(statusCodes)

func (s ConservationStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ConservationStatus(%d)", int(s))
	}
	return statusCodes[s]
}

func (s ConservationStatus) Valid() bool {
	return s >= StatusNotAvailable && int(s) < len(statusCodes)
}

// ParseConservationStatus accepts the two-letter code in any case. An empty
// code means not available.
func ParseConservationStatus(code string) (ConservationStatus, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return StatusNotAvailable, nil
	}
	for i, c := range statusCodes {
		if c == code {
			return ConservationStatus(i), nil
		}
	}
	return StatusNotAvailable, fmt.Errorf("exhibit: unknown conservation status %q", code)
}

// Descriptor is the read-only record behind one exhibit. Animals and plants
// share it; plants usually leave Name empty.
type Descriptor struct {
	ID             string
	Kind           component.ExhibitKind
	Name           string
	LocalName      string
	ScientificName string
	Family         string
	Status         ConservationStatus
	Idle           *component.AnimationClip
	// Actions may hold nil entries for slots without a clip.
	Actions []*component.AnimationClip
	Cue     string
}

// Label is the best single-line name for logs and tooltips.
func (d *Descriptor) Label() string {
	if d == nil {
		return ""
	}
	switch {
	case d.Name != "":
		return d.Name
	case d.ScientificName != "":
		return d.ScientificName
	case d.LocalName != "":
		return d.LocalName
	}
	return d.ID
}
