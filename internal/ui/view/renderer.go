// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
	"github.com/palemoky/go-fish/internal/protocol"
	"github.com/palemoky/go-fish/internal/ui/common"
	"github.com/palemoky/go-fish/internal/ui/model"
)

// 可见的桌面范围（世界坐标，原点居中，Y 轴向上）
const (
	halfWidth  = 9.0
	halfHeight = 5.5
)

// CreateViewRenderer creates a view renderer function that can be injected into TableModel.
func CreateViewRenderer() func(model.View) string {
	return func(v model.View) string {
		if v.Width() <= 0 || v.Height() <= 0 {
			return "Loading..."
		}
		return TableView(v)
	}
}

// TableView renders the remote seat above the canvas and the local seat below it.
func TableView(v model.View) string {
	rows := max(v.Height()-model.ChromeLines, 1)
	c := newCanvas(v.Width(), rows)
	snap := v.Snapshot()

	cards := v.Cards()
	byID := make(map[card.ID]*card.Card, len(cards))
	for i := range cards {
		byID[cards[i].ID] = &cards[i]
	}
	for i := range cards {
		cd := &cards[i]
		pos, ok := worldPos(v, cd, byID)
		if !ok {
			continue
		}
		col, row := c.project(pos)
		label, style := common.CardFace(cd)
		c.put(col, row, label, style)
	}

	var sb strings.Builder
	sb.WriteString(headerLine(snap, 1))
	sb.WriteString("\n")
	sb.WriteString(c.String())
	sb.WriteString("\n")
	sb.WriteString(headerLine(snap, 0))
	sb.WriteString("\n")
	sb.WriteString(statusLine(v))
	sb.WriteString("\n")
	sb.WriteString(v.HelpView())
	return sb.String()
}

// worldPos returns where a card is drawn. Stacked cards sit on their parent.
func worldPos(v model.View, c *card.Card, byID map[card.ID]*card.Card) (geometry.Vec2, bool) {
	if c.Stacked() {
		if _, ok := byID[c.Parent]; ok {
			if pos, ok := v.Position(c.Parent); ok {
				return pos.Add(c.Offset), true
			}
		}
	}
	return v.Position(c.ID)
}

func headerLine(snap protocol.TableSnapshot, i int) string {
	if i >= len(snap.Hands) {
		return ""
	}
	h := snap.Hands[i]
	icon := "🙂"
	if h.IsAI {
		icon = "🤖"
	}
	return common.TitleStyle(fmt.Sprintf("%s %s  🃏 %d  📚 %d",
		icon, common.TruncateName(h.Name, 12), len(h.Cards), len(h.Books)))
}

func statusLine(v model.View) string {
	line := fmt.Sprintf("[%s] %s", v.Mode(), v.Status())
	if e := v.Error(); e != "" {
		return common.StatusStyle.Render(line) + "  " + common.ErrorStyle.Render("⚠ "+e)
	}
	return common.StatusStyle.Render(line)
}

// --- canvas ---

type cell struct {
	ch    string
	style *lipgloss.Style
}

// canvas is a grid of terminal cells onto which the table is projected.
type canvas struct {
	width  int
	height int
	cells  [][]cell
}

func newCanvas(width, height int) *canvas {
	cells := make([][]cell, height)
	for r := range cells {
		cells[r] = make([]cell, width)
		for col := range cells[r] {
			cells[r][col].ch = " "
		}
	}
	return &canvas{width: width, height: height, cells: cells}
}

// project maps a world position to the top-left cell of a card.
func (c *canvas) project(p geometry.Vec2) (col, row int) {
	cols := max(c.width-common.CardWidth, 0)
	fx := (p.X + halfWidth) / (2 * halfWidth)
	fy := (halfHeight - p.Y) / (2 * halfHeight)
	col = int(math.Round(fx * float64(cols)))
	row = int(math.Round(fy * float64(c.height-1)))
	return clamp(col, 0, cols), clamp(row, 0, c.height-1)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// put draws a styled label; later calls paint over earlier ones.
func (c *canvas) put(col, row int, label string, style lipgloss.Style) {
	if row < 0 || row >= c.height {
		return
	}
	for i, r := range []rune(label) {
		x := col + i
		if x < 0 || x >= c.width {
			continue
		}
		c.cells[row][x] = cell{ch: string(r), style: &style}
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.height)
	for r, row := range c.cells {
		var sb strings.Builder
		var run strings.Builder
		var runStyle *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle != nil {
				sb.WriteString(runStyle.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.style != runStyle {
				flush()
				runStyle = cl.style
			}
			run.WriteString(cl.ch)
		}
		flush()
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}
