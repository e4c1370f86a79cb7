// Package ui provides a descriptor-driven HUD for the scene viewer plus the
// device input adapter. Panels are defined through field metadata so the
// layout can change alongside the data it shows.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar [0, 1]
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	Label      string
	Widget     WidgetType
	Format     string                // Printf format for numeric text
	Visible    func(HUDData) bool    // Nil = always visible
	Getter     func(HUDData) float32 // Numeric value
	TextGetter func(HUDData) string  // Text value, preferred over Getter
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	Title  string
	Fields []FieldDescriptor
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	Title    string
	Sections []SectionDescriptor
	Width    int32
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Crosshair      rl.Color
	Prompt         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 200, G: 90, B: 80, A: 255},
		Crosshair:      rl.Color{R: 255, G: 255, B: 255, A: 180},
		Prompt:         rl.Color{R: 255, G: 230, B: 160, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
