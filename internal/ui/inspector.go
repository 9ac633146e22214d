package ui

// inspectorMargin is the gap between the inspector panel and the screen edge.
const inspectorMargin = 12

// Card is a panel of text lines. The first line is drawn as a title.
// It owns its nodes and reuses them between frames.
type Card struct {
	panel  *Node
	labels []*Node
	count  int
}

// NewCard returns an empty card.
func NewCard() *Card {
	return &Card{panel: NewNode(TypePanel, "")}
}

// Layout sizes the card to lines and places its top-left corner at (x, y), pulled back inside
// a screen of screenW by screenH pixels.
func (c *Card) Layout(e *Engine, lines []string, x, y, screenW, screenH float32) {
	st := e.Style()
	for len(c.labels) < len(lines) {
		c.labels = append(c.labels, NewNode(TypeLabel, ""))
	}
	c.count = len(lines)

	var w, h float32
	for i, line := range lines {
		lw, lh := e.Measure(line)
		if lw > w {
			w = lw
		}
		if i > 0 {
			h += st.LineGap
		}
		h += lh
	}
	w += 2 * st.Padding
	h += 2 * st.Padding
	x, y = Clamp(x, y, w, h, screenW, screenH)
	c.panel.Bounds.X, c.panel.Bounds.Y = x, y
	c.panel.Bounds.Width, c.panel.Bounds.Height = w, h

	ty := y + st.Padding
	for i, line := range lines {
		n := c.labels[i]
		n.Type = TypeLabel
		if i == 0 {
			n.Type = TypeTitle
		}
		n.Text = line
		n.Bounds.X, n.Bounds.Y = x+st.Padding, ty
		_, lh := e.Measure(line)
		ty += lh + st.LineGap
	}
}

// Width returns the laid-out panel width.
func (c *Card) Width() float32 {
	return c.panel.Bounds.Width
}

// AppendNodes appends the panel and its labels to dst.
func (c *Card) AppendNodes(dst []*Node) []*Node {
	if c.count == 0 {
		return dst
	}
	dst = append(dst, c.panel)
	return append(dst, c.labels[:c.count]...)
}

// Clamp moves a w by h box at (x, y) so that it stays inside the screen where possible.
func Clamp(x, y, w, h, screenW, screenH float32) (float32, float32) {
	if x+w > screenW {
		x = screenW - w
	}
	if y+h > screenH {
		y = screenH - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// Inspector is a right-side panel that shows the selected drillhole.
type Inspector struct {
	card *Card
}

// NewInspector creates an empty inspector.
func NewInspector() *Inspector {
	return &Inspector{card: NewCard()}
}

// Selection holds the data shown in the inspector. Pass this from the viewer layer; ui does not
// depend on the drillhole model.
type Selection struct {
	ID    string
	Lines []string
}

// AppendNodes appends inspector nodes to dst when visible is true, after laying them out in the
// top-right corner. When visible is false, dst is returned unchanged. Call every frame so
// visibility and content stay in sync.
func (in *Inspector) AppendNodes(dst []*Node, e *Engine, visible bool, sel Selection, screenW, screenH float32) []*Node {
	if !visible || sel.ID == "" {
		return dst
	}
	lines := append([]string{"Selected: " + sel.ID}, sel.Lines...)
	in.card.Layout(e, lines, screenW, inspectorMargin, screenW-inspectorMargin, screenH)
	return in.card.AppendNodes(dst)
}
