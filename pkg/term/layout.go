package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/go-will/will/pkg/dom"
)

// minInputWidth is the number of cells a text input occupies when its value
// is shorter.
const minInputWidth = 20

var blockTags = map[string]bool{
	"body":    true,
	"div":     true,
	"form":    true,
	"h1":      true,
	"h2":      true,
	"h3":      true,
	"li":      true,
	"ol":      true,
	"p":       true,
	"section": true,
	"ul":      true,
}

// span is a run of text drawn in one style. Spans of a line are separated
// by one blank cell.
type span struct {
	text  string
	style tcell.Style
	// node is the element a click on the span targets, or nil.
	node *dom.Element
	// cursor is the cell offset of the text cursor within the span, or -1.
	cursor int
}

type line []span

type layouter struct {
	focused *dom.Element
	lines   []line
	current line
}

// layout flattens the subtree of root into lines. Block elements start and
// end a line; everything else flows inline.
func layout(root *dom.Element, focused *dom.Element) []line {
	l := &layouter{focused: focused}
	l.element(root, tcell.StyleDefault)
	l.breakLine()
	return l.lines
}

func (l *layouter) breakLine() {
	if len(l.current) > 0 {
		l.lines = append(l.lines, l.current)
		l.current = nil
	}
}

func (l *layouter) add(s span) {
	l.current = append(l.current, s)
}

func (l *layouter) element(e *dom.Element, style tcell.Style) {
	if e.IsText() {
		if text := strings.Join(strings.Fields(e.Data()), " "); text != "" {
			l.add(span{text: text, style: style, cursor: -1})
		}
		return
	}

	style = elementStyle(e, style)
	block := blockTags[e.NodeName()]
	if block {
		l.breakLine()
	}
	switch e.NodeName() {
	case "input":
		l.add(l.input(e, style))
	case "button":
		l.add(l.control(e, "[ "+dom.TextContent(e)+" ]", style))
	default:
		for _, c := range e.Children() {
			l.element(c, style)
		}
	}
	if block {
		l.breakLine()
	}
}

func (l *layouter) control(e *dom.Element, text string, style tcell.Style) span {
	if e == l.focused {
		style = style.Reverse(true)
	}
	return span{text: text, style: style, node: e, cursor: -1}
}

func (l *layouter) input(e *dom.Element, style tcell.Style) span {
	if isCheckbox(e) {
		mark := "[ ]"
		if checked(e) {
			mark = "[x]"
		}
		return l.control(e, mark, style)
	}

	value := stringProp(e, "value")
	content := value
	if value == "" {
		if placeholder := stringProp(e, "placeholder"); placeholder != "" {
			content = placeholder
			if e != l.focused {
				style = style.Dim(true)
			}
		}
	}
	width := max(minInputWidth, uniseg.StringWidth(value)+1)
	if pad := width - uniseg.StringWidth(content); pad > 0 {
		content += strings.Repeat(" ", pad)
	}

	s := l.control(e, "["+content+"]", style.Underline(true))
	if e == l.focused {
		s.cursor = 1 + uniseg.StringWidth(value)
	}
	return s
}

func elementStyle(e *dom.Element, style tcell.Style) tcell.Style {
	switch e.NodeName() {
	case "h1", "h2", "h3", "b", "strong":
		style = style.Bold(true)
	case "em", "i":
		style = style.Italic(true)
	}
	if css := stringProp(e, "style"); strings.Contains(css, "line-through") {
		style = style.StrikeThrough(true)
	}
	if disabled, _ := propValue(e, "disabled").(bool); disabled {
		style = style.Dim(true)
	}
	return style
}

func propValue(e *dom.Element, name string) any {
	v, _ := e.Property(name)
	return v
}

func stringProp(e *dom.Element, name string) string {
	s, _ := propValue(e, name).(string)
	return s
}

func checked(e *dom.Element) bool {
	b, _ := propValue(e, "checked").(bool)
	return b
}

func isCheckbox(e *dom.Element) bool {
	return e.NodeName() == "input" && stringProp(e, "type") == "checkbox"
}

func isTextInput(e *dom.Element) bool {
	if e.NodeName() == "textarea" {
		return true
	}
	if e.NodeName() != "input" {
		return false
	}
	switch stringProp(e, "type") {
	case "", "text", "search", "email", "password", "url":
		return true
	}
	return false
}

// ancestor returns the closest ancestor of e with the given tag, or nil.
func ancestor(e *dom.Element, tag string) *dom.Element {
	for n := e.Parent(); n != nil; n = n.Parent() {
		if n.NodeName() == tag {
			return n
		}
	}
	return nil
}
