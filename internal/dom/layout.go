package dom

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vibecodeutah/hackathon-site/internal/motion"
)

const (
	indent   = 2
	minWidth = 12
)

// Layout stacks the document into rows of the given width: every element
// with text gets its wrapped lines, empty leaves get one row, and a parent's
// box spans its own rows plus its children. It returns the total height.
func (d *Document) Layout(width int) int {
	if d.Root == nil {
		return 0
	}
	if width < minWidth {
		width = minWidth
	}
	return d.place(d.Root, 0, 0, width)
}

func (d *Document) place(n *Node, x, y, width int) int {
	w := max(width-x, minWidth)
	n.rect = motion.Rect{X: float64(x), Y: float64(y), W: float64(w)}

	own := len(Wrap(n.text, w))
	if own == 0 && len(n.Children) == 0 {
		own = 1
	}
	next := y + own

	cx := x
	if n != d.Root {
		cx = min(x+indent, width-minWidth)
	}
	for _, c := range n.Children {
		next = d.place(c, cx, next, width)
	}
	n.rect.H = float64(next - y)
	return next
}

// Wrap breaks text into lines no wider than width cells, splitting words
// only when a single word is too long.
func Wrap(text string, width int) []string {
	if text == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	var lines []string
	var cur strings.Builder
	curW := 0
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if curW > 0 && curW+1+ww > width {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			if curW > 0 {
				flush()
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		flush()
	}
	return lines
}

// Hit returns the innermost element whose box contains the cell (x, y).
func (d *Document) Hit(x, y int) (*Node, bool) {
	px, py := float64(x), float64(y)
	for i := len(d.nodes) - 1; i >= 0; i-- {
		r := d.nodes[i].rect
		if px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H {
			return d.nodes[i], true
		}
	}
	return nil, false
}

// Bounds reports el's box when it belongs to a laid out document.
func Bounds(el motion.Element) (motion.Rect, bool) {
	n, ok := el.(*Node)
	if !ok {
		return motion.Rect{}, false
	}
	return n.rect, true
}
