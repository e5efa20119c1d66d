package domain

import (
	"encoding/json"
	"time"
)

type WidgetType string

const (
	WidgetNotesList  WidgetType = "notes-list"
	WidgetStats      WidgetType = "stats"
	WidgetCalendar   WidgetType = "calendar"
	WidgetSticky     WidgetType = "sticky-note"
	WidgetPinnedPlan WidgetType = "pinned-plan"
)

// Layout is the widget's grid position. Real placement compaction happens in
// the layout engine on the client; the server just stores the record.
type Layout struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type Widget struct {
	ID        string          `json:"id"`
	TabID     string          `json:"tab_id"`
	Type      WidgetType      `json:"type"`
	Layout    Layout          `json:"layout"`
	Config    json.RawMessage `json:"config,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WidgetConfig is the decoded, type-dependent payload of a widget.
type WidgetConfig interface {
	widgetConfig()
}

type StickyConfig struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

type PinnedPlanConfig struct {
	NoteID string `json:"note_id"`
}

type CalendarConfig struct {
	WeekStart string `json:"week_start,omitempty"`
}

type StatsConfig struct{}

type NotesListConfig struct{}

// PlaceholderConfig stands in for widget types this build does not know.
// Unknown types are tolerated so the schema can evolve forward; the UI renders
// them as a work-in-progress placeholder rather than failing.
type PlaceholderConfig struct {
	Type WidgetType `json:"-"`
}

func (StickyConfig) widgetConfig()      {}
func (PinnedPlanConfig) widgetConfig()  {}
func (CalendarConfig) widgetConfig()    {}
func (StatsConfig) widgetConfig()       {}
func (NotesListConfig) widgetConfig()   {}
func (PlaceholderConfig) widgetConfig() {}

// DecodeConfig interprets the raw config payload according to the widget type.
// An unrecognized type yields a PlaceholderConfig, never an error.
func (w *Widget) DecodeConfig() (WidgetConfig, error) {
	switch w.Type {
	case WidgetSticky:
		var c StickyConfig
		if err := decodeConfig(w.Config, &c); err != nil {
			return nil, err
		}
		return c, nil
	case WidgetPinnedPlan:
		var c PinnedPlanConfig
		if err := decodeConfig(w.Config, &c); err != nil {
			return nil, err
		}
		return c, nil
	case WidgetCalendar:
		var c CalendarConfig
		if err := decodeConfig(w.Config, &c); err != nil {
			return nil, err
		}
		return c, nil
	case WidgetStats:
		return StatsConfig{}, nil
	case WidgetNotesList:
		return NotesListConfig{}, nil
	default:
		return PlaceholderConfig{Type: w.Type}, nil
	}
}

func decodeConfig(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// DefaultLayout positions a new widget top-left with a per-type default size.
func DefaultLayout(t WidgetType) Layout {
	switch t {
	case WidgetSticky:
		return Layout{X: 0, Y: 0, W: 2, H: 2}
	case WidgetCalendar:
		return Layout{X: 0, Y: 0, W: 4, H: 3}
	case WidgetStats:
		return Layout{X: 0, Y: 0, W: 3, H: 2}
	default:
		return Layout{X: 0, Y: 0, W: 4, H: 4}
	}
}

type CreateWidgetRequest struct {
	Type   WidgetType      `json:"type" validate:"required"`
	Layout *Layout         `json:"layout"`
	Config json.RawMessage `json:"config"`
}

type UpdateWidgetRequest struct {
	Layout *Layout         `json:"layout"`
	Config json.RawMessage `json:"config"`
}

// LayoutUpdate is one entry of a batch produced by a drag/resize gesture.
type LayoutUpdate struct {
	ID string `json:"id" validate:"required"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	W  int    `json:"w"`
	H  int    `json:"h"`
}
