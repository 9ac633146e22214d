package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node types drawn by the Engine.
const (
	TypePanel = "panel"
	TypeLabel = "label"
	TypeTitle = "title"
)

// Node is a single UI element: a panel or a line of text. Bounds are in screen pixels;
// labels use only the top-left corner.
type Node struct {
	Type   string
	Bounds rl.Rectangle
	Text   string
}

// NewNode creates a node with type and optional text.
func NewNode(typ, text string) *Node {
	return &Node{Type: typ, Text: text}
}
