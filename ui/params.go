package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ParamSlider describes one live-tunable solver parameter.
type ParamSlider struct {
	Name   string // parameter key passed to the setter
	Label  string
	Min    float32
	Max    float32
	Format string // printf format for the current value
}

// DefaultParamSliders covers the parameters most worth poking at runtime.
func DefaultParamSliders() []ParamSlider {
	return []ParamSlider{
		{Name: "gravity_y", Label: "Gravity", Min: 0, Max: 600, Format: "%.0f"},
		{Name: "stiffness", Label: "Stiffness", Min: 0, Max: 400, Format: "%.0f"},
		{Name: "viscosity", Label: "Viscosity", Min: 0, Max: 40, Format: "%.1f"},
		{Name: "surface_tension", Label: "Surface tension", Min: 0, Max: 4, Format: "%.2f"},
		{Name: "repulsion", Label: "Repulsion", Min: 0, Max: 120, Format: "%.0f"},
		{Name: "boundary_bounce", Label: "Bounce", Min: 0, Max: 1, Format: "%.2f"},
		{Name: "velocity_damping", Label: "Damping", Min: 0.9, Max: 1, Format: "%.3f"},
	}
}

// PanelAction is what the user clicked in the panel's button row.
type PanelAction int

const (
	ActionNone PanelAction = iota
	ActionTogglePause
	ActionReset
)

// ParamsPanel renders slider controls for live solver parameters.
type ParamsPanel struct {
	renderer *Renderer
	sliders  []ParamSlider
	x, y     int32
	width    int32
	visible  bool
}

// NewParamsPanel creates a panel anchored at the given position.
func NewParamsPanel(x, y, width int32) *ParamsPanel {
	return &ParamsPanel{
		renderer: NewRenderer(),
		sliders:  DefaultParamSliders(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (p *ParamsPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *ParamsPanel) IsVisible() bool {
	return p.visible
}

// Draw renders the sliders and forwards any changed value through set.
// Current values come from params, keyed by parameter name. Returns the
// button action clicked this frame, if any.
func (p *ParamsPanel) Draw(params map[string]float32, set func(name string, v float32)) PanelAction {
	if !p.visible {
		return ActionNone
	}

	r := p.renderer
	padding := r.Theme.Padding
	rowHeight := int32(38)
	buttonRow := int32(40)
	panelHeight := int32(len(p.sliders))*rowHeight + buttonRow + padding*3 + r.Theme.LineHeight

	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "Fluid Parameters") + 4

	sliderWidth := float32(p.width - padding*2 - 60)
	for _, s := range p.sliders {
		cur, ok := params[s.Name]
		if !ok {
			continue
		}

		r.DrawLabel(x, y, s.Label)
		y += r.Theme.LineHeight

		next := gui.SliderBar(
			rl.Rectangle{X: float32(x), Y: float32(y), Width: sliderWidth, Height: 16},
			"", "",
			cur, s.Min, s.Max,
		)
		rl.DrawText(fmt.Sprintf(s.Format, cur), x+int32(sliderWidth)+8, y, r.Theme.FontSize, r.Theme.ValueColor)
		if next != cur {
			set(s.Name, next)
		}
		y += rowHeight - r.Theme.LineHeight
	}

	action := ActionNone
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y + 4), Width: 100, Height: 26}, "Pause") {
		action = ActionTogglePause
	}
	if gui.Button(rl.Rectangle{X: float32(x + 110), Y: float32(y + 4), Width: 100, Height: 26}, "Reset") {
		action = ActionReset
	}
	return action
}
