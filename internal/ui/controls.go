package ui

import (
	"math"
	"strconv"

	"conway/internal/core"
)

// MinPanelHeight is the smallest height at which every HUD row fits.
const MinPanelHeight = controlsTop + 14*lineHeight

// hudLine is one label/value row of the HUD.
type hudLine struct {
	label string
	value string
}

// snapshotLines flattens a snapshot into display rows, skipping keys that are
// rendered as adjustable controls.
func snapshotLines(snap core.ParameterSnapshot, controls []hudControlState) []hudLine {
	skip := map[string]bool{}
	for _, c := range controls {
		skip[c.control.Key] = true
	}
	var lines []hudLine
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			if skip[p.Key] {
				continue
			}
			lines = append(lines, hudLine{label: p.Label, value: p.Value})
		}
	}
	return lines
}

type hudControlState struct {
	control  core.ParameterControl
	value    string
	intValue int
	hasValue bool
}

// refresh loads the control's current value from snap.
func (s *hudControlState) refresh(snap core.ParameterSnapshot) {
	param, ok := snap.Lookup(s.control.Key)
	if !ok {
		s.hasValue = false
		s.value = "--"
		return
	}
	parsed, err := strconv.Atoi(param.Value)
	if err != nil {
		s.hasValue = false
		s.value = "--"
		return
	}
	s.intValue = parsed
	s.value = strconv.Itoa(parsed)
	s.hasValue = true
}

// target returns the value one step in direction, and whether it lies within
// the control's bounds.
func (s *hudControlState) target(direction int) (int, bool) {
	if !s.hasValue || direction == 0 {
		return 0, false
	}
	step := int(math.Round(s.control.Step))
	if step <= 0 {
		step = 1
	}
	target := s.intValue + direction*step
	if s.control.HasMin {
		min := int(math.Round(s.control.Min))
		if target < min {
			if s.intValue <= min {
				return 0, false
			}
			target = min
		}
	}
	if s.control.HasMax {
		max := int(math.Round(s.control.Max))
		if target > max {
			if s.intValue >= max {
				return 0, false
			}
			target = max
		}
	}
	return target, true
}

// adjust applies one step through setter and reports whether it changed.
func (s *hudControlState) adjust(setter core.IntParameterSetter, direction int) bool {
	if setter == nil {
		return false
	}
	target, ok := s.target(direction)
	if !ok || target == s.intValue {
		return false
	}
	if !setter.SetIntParameter(s.control.Key, target) {
		return false
	}
	s.intValue = target
	s.value = strconv.Itoa(target)
	return true
}

const (
	panelPadding   = 12
	lineHeight     = 24
	buttonSize     = 20
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
