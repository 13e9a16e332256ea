package blueprint

// Style option names
const (
	PrimaryColor    = "primary_color"
	BackgroundColor = "background_color"
	ShapeStyle      = "shape_style"
)

// ShapeStyleGeometric is the default shape style
const ShapeStyleGeometric = "geometric"

// Style is a flat mapping of style option name to value
type Style map[string]string

// DefaultStyle returns the style applied when no profile overrides it
func DefaultStyle() Style {
	return Style{
		PrimaryColor:    "WHITE",
		BackgroundColor: "BLACK",
		ShapeStyle:      ShapeStyleGeometric,
	}
}

// Merge returns a copy of s with every field of profile laid over it.
// Profile values win; fields missing from profile keep the value from s.
func (s Style) Merge(profile Style) Style {
	merged := make(Style, len(s)+len(profile))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range profile {
		merged[k] = v
	}
	return merged
}

type VisualKind string

const (
	KindText      VisualKind = "text"
	KindRectangle VisualKind = "rectangle"
	KindCircle    VisualKind = "circle"
	KindArrow     VisualKind = "arrow"
	KindGrid      VisualKind = "grid"
)

// Visual is one shape or text element. Type selects which of the
// remaining fields are meaningful.
type Visual struct {
	Type     VisualKind `json:"type"`
	Content  string     `json:"content,omitempty"`
	Position string     `json:"position,omitempty"`
	Scale    float64    `json:"scale,omitempty"`
	Color    string     `json:"color,omitempty"`
	Start    string     `json:"start,omitempty"`
	End      string     `json:"end,omitempty"`
	Rows     int        `json:"rows,omitempty"`
	Cols     int        `json:"cols,omitempty"`
}

// Scene describes what to draw for one script scene
type Scene struct {
	ID        int      `json:"id"`
	Narration string   `json:"narration"`
	Duration  float64  `json:"duration"`
	Visuals   []Visual `json:"visuals"`
}

// Blueprint is the renderer-independent description of a whole video
type Blueprint struct {
	Title         string  `json:"title"`
	StyleSettings Style   `json:"style_settings"`
	Scenes        []Scene `json:"scenes"`
}
