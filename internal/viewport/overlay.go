package viewport

import (
	"drillview/internal/picking"
	"drillview/internal/theme"
	"drillview/internal/ui"
)

// Overlay draws the hover tooltip and the selection inspector on top of the 3D view.
type Overlay struct {
	engine    *ui.Engine
	tooltip   *ui.Card
	inspector *ui.Inspector
	nodes     []*ui.Node
	styled    bool
	theme     theme.Theme
}

// NewOverlay returns an overlay drawing with engine.
func NewOverlay(engine *ui.Engine) *Overlay {
	return &Overlay{engine: engine, tooltip: ui.NewCard(), inspector: ui.NewInspector()}
}

// Draw lays out and draws the overlay for the current viewer state.
func (o *Overlay) Draw(state State) {
	if state == nil {
		return
	}
	o.restyle(state.Theme())
	rect := state.Rect()

	o.nodes = o.nodes[:0]
	if h, ok := state.SelectedHole(); ok {
		sel := ui.Selection{ID: h.ID, Lines: picking.TooltipLines(h)[1:]}
		o.nodes = o.inspector.AppendNodes(o.nodes, o.engine, true, sel, rect.W, rect.H)
	}
	if tip := state.Tooltip(); tip.Visible && len(tip.Lines) > 0 {
		o.tooltip.Layout(o.engine, tip.Lines, tip.X, tip.Y, rect.W, rect.H)
		o.nodes = o.tooltip.AppendNodes(o.nodes)
	}
	o.engine.SetNodes(o.nodes)
	o.engine.Draw()
}

func (o *Overlay) restyle(t theme.Theme) {
	if o.styled && t == o.theme {
		return
	}
	o.styled, o.theme = true, t
	o.engine.SetStyle(ui.StyleFromTheme(t))
}
