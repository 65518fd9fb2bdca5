package exhibit

import (
	"unicode/utf8"
)

// DefaultMaxNameLength is the longest "local (name)" pair kept on one line.
const DefaultMaxNameLength = 31

// DisplayName formats the local and common names for the tooltip and detail
// header. When their combined length exceeds maxLen the common name moves to
// a second line. Exhibits without a common name use the scientific name.
func DisplayName(d *Descriptor, maxLen int) string {
	if d == nil {
		return ""
	}
	name := d.Name
	if name == "" {
		name = d.ScientificName
	}
	switch {
	case d.LocalName == "":
		return name
	case name == "":
		return d.LocalName
	}
	if utf8.RuneCountInString(d.LocalName)+utf8.RuneCountInString(name) <= maxLen {
		return d.LocalName + " (" + name + ")"
	}
	return d.LocalName + "\n(" + name + ")"
}

// IconState is how one conservation icon is drawn.
type IconState struct {
	Visible bool
	Scale   float64
}

// HighlightScale enlarges the icon matching the exhibit's status.
const HighlightScale = 1.5

// StatusIcons lays out a row of count icons indexed by ConservationStatus.
// Not-available shows only icon 0; any other status shows the rest with its
// own icon enlarged. ok is false when the status has no icon in the row.
func StatusIcons(status ConservationStatus, count int) (icons []IconState, ok bool) {
	if count <= 0 {
		return nil, false
	}
	icons = make([]IconState, count)
	na := status == StatusNotAvailable
	for i := range icons {
		icons[i] = IconState{Visible: na == (i == 0), Scale: 1}
	}
	if na {
		return icons, true
	}
	if status < 0 || int(status) >= count {
		return icons, false
	}
	icons[status].Scale = HighlightScale
	return icons, true
}
