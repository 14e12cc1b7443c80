package editor

import (
	"strings"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/widgets"
)

// StatusService is the name the status bar is registered under.
const StatusService = "status"

// Status is the "status" service: plugins write named segments.
type Status interface {
	SetStatus(segment, text string)
}

// StatusBar is a one-line label joining non-empty segments in the order
// they were first set.
type StatusBar struct {
	*widgets.Label
	order []string
	segs  map[string]string
}

func NewStatusBar() *StatusBar {
	l := widgets.NewLabel(widgets.LabelConfig{Config: core.Config{Height: 1, Bg: host.Gray, Fg: host.White, Name: "status"}})
	return &StatusBar{Label: l, segs: make(map[string]string)}
}

func (s *StatusBar) SetStatus(segment, text string) {
	if _, ok := s.segs[segment]; !ok {
		s.order = append(s.order, segment)
	}
	s.segs[segment] = text
	parts := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if t := s.segs[name]; t != "" {
			parts = append(parts, t)
		}
	}
	s.SetText(" " + strings.Join(parts, " │ "))
}

// Segment returns the current text of one segment.
func (s *StatusBar) Segment(name string) string { return s.segs[name] }
