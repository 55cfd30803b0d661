package term

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/focus"
)

// HandleKey applies one key press to the document and reports whether the
// loop should continue.
//
// The focused element first receives a "keydown" event; if a listener
// prevents its default, the key does nothing else.
func (h *Host) HandleKey(ev *tcell.EventKey) bool {
	h.logger.Debug("key", "name", ev.Name())

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		focus.Move(h.doc, h.doc.Body(), 1)
		return true
	case tcell.KeyBacktab:
		focus.Move(h.doc, h.doc.Body(), -1)
		return true
	}

	target := h.doc.Focused()
	if target == nil {
		return true
	}
	keydown := dom.NewEvent("keydown")
	keydown.Key = keyName(ev)
	if !h.doc.DispatchEvent(target, keydown) {
		return true
	}

	activate := ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ')
	switch {
	case isTextInput(target):
		h.edit(target, ev)
	case isCheckbox(target):
		if activate {
			h.toggle(target)
		}
	case target.NodeName() == "button":
		if activate {
			h.activate(target)
		}
	case ev.Key() == tcell.KeyEnter:
		h.doc.DispatchEvent(target, dom.NewEvent("click"))
	}
	return true
}

// edit applies a key to a text input the way typing would: the value
// changes first, then an "input" event is dispatched. Enter submits the
// enclosing form.
func (h *Host) edit(input *dom.Element, ev *tcell.EventKey) {
	value := stringProp(input, "value")
	switch ev.Key() {
	case tcell.KeyRune:
		value += string(ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if value == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(value)
		value = value[:len(value)-size]
	case tcell.KeyCtrlU:
		if value == "" {
			return
		}
		value = ""
	case tcell.KeyEnter:
		if form := ancestor(input, "form"); form != nil {
			h.submit(form)
		}
		return
	default:
		return
	}
	input.SetProperty("value", value)
	h.doc.DispatchEvent(input, dom.NewEvent("input"))
}

// toggle flips a checkbox and dispatches "change".
func (h *Host) toggle(box *dom.Element) {
	box.SetProperty("checked", !checked(box))
	h.doc.DispatchEvent(box, dom.NewEvent("change"))
}

// activate clicks a button. An uncancelled click on a submit button submits
// the enclosing form.
func (h *Host) activate(button *dom.Element) {
	if !h.doc.DispatchEvent(button, dom.NewEvent("click")) {
		return
	}
	kind := stringProp(button, "type")
	if kind != "" && kind != "submit" {
		return
	}
	if form := ancestor(button, "form"); form != nil {
		h.submit(form)
	}
}

func (h *Host) submit(form *dom.Element) {
	h.doc.DispatchEvent(form, dom.NewEvent("submit"))
}

// keyName returns the DOM key name of ev.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyDelete:
		return "Delete"
	default:
		return ev.Name()
	}
}
