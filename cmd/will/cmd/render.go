package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-will/will/cmd/will/internal/logger"
	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/errors"
	"github.com/go-will/will/pkg/focus"
)

// maxFrames bounds the frames run after each action.
const maxFrames = 100

type renderOptions struct {
	format  string
	hooks   bool
	actions []string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render [demo]",
		Short: "Render a demo headless and print the tree",
		Long: `Render mounts a demo into an in-memory document, applies the given
actions, runs the frames they schedule and prints the resulting tree.

Actions address elements by id:
  click:ID          dispatch a click
  input:ID=TEXT     set the value and dispatch input
  toggle:ID         flip checked and dispatch change
  submit:ID         dispatch submit
  focus:ID          focus the element

Example:
  will render counter --do click:increment --do click:increment
  will render todo --do input:task-input=milk --do submit:task-form --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "outline", "Output format: outline or json")
	cmd.Flags().BoolVar(&opts.hooks, "hooks", false, "Also print hook storage per component identity")
	cmd.Flags().StringArrayVar(&opts.actions, "do", nil, "Action to apply before printing (repeatable)")
	return cmd
}

func runRender(out io.Writer, args []string, opts renderOptions) error {
	if opts.format != "outline" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (want outline or json)", opts.format)
	}

	demo, err := selectDemo(args)
	if err != nil {
		return err
	}
	doc := dom.NewDocument()
	root, err := mountDemo(doc, demo)
	if err != nil {
		return err
	}

	for _, action := range opts.actions {
		if err := apply(doc, action); err != nil {
			return err
		}
		frames, err := settle(doc)
		if err != nil {
			return err
		}
		logger.Debug("action applied", "action", action, "frames", frames)
	}

	container := root.Container().(*dom.Element)
	switch opts.format {
	case "json":
		if err := writeJSON(out, container, doc); err != nil {
			return err
		}
	default:
		for _, c := range container.Children() {
			fmt.Fprint(out, dom.Outline(c))
		}
	}

	if opts.hooks {
		fmt.Fprintln(out, "# hooks")
		for _, line := range root.Store().Describe() {
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// apply runs one "verb:id[=value]" action against doc.
func apply(doc *dom.Document, action string) error {
	verb, rest, ok := strings.Cut(action, ":")
	if !ok || rest == "" {
		return fmt.Errorf("malformed action %q (want verb:id)", action)
	}
	id, value, _ := strings.Cut(rest, "=")

	node, _ := doc.GetElementByID(id).(*dom.Element)
	if node == nil {
		return fmt.Errorf("action %q: no element with id %q", action, id)
	}

	switch verb {
	case "click", "submit":
		doc.DispatchEvent(node, dom.NewEvent(verb))
	case "input":
		node.SetProperty("value", value)
		doc.DispatchEvent(node, dom.NewEvent("input"))
	case "toggle":
		on, _ := node.Property("checked")
		checked, _ := on.(bool)
		node.SetProperty("checked", !checked)
		doc.DispatchEvent(node, dom.NewEvent("change"))
	case "focus":
		if err := node.Focus(); err != nil {
			return fmt.Errorf("action %q: %w", action, err)
		}
	default:
		return fmt.Errorf("unknown action verb %q", verb)
	}
	return nil
}

// settle runs frames until none are pending and returns how many ran.
func settle(doc *dom.Document) (int, error) {
	total := 0
	for range maxFrames {
		n := doc.Flush()
		if n == 0 {
			return total, nil
		}
		total += n
	}
	return total, errors.New("cmd.settle", errors.KindRender,
		fmt.Errorf("frames still pending after %d", maxFrames))
}

type jsonNode struct {
	Name     string            `json:"name"`
	Text     string            `json:"text,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Events   []string          `json:"events,omitempty"`
	Children []*jsonNode       `json:"children,omitempty"`
}

type jsonTree struct {
	Tree  []*jsonNode `json:"tree"`
	Focus []int       `json:"focus,omitempty"`
}

func writeJSON(out io.Writer, container *dom.Element, doc *dom.Document) error {
	tree := jsonTree{Focus: focus.CapturePath(doc.ActiveElement(), container)}
	for _, c := range container.Children() {
		tree.Tree = append(tree.Tree, toJSON(c))
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

func toJSON(e *dom.Element) *jsonNode {
	n := &jsonNode{Name: e.NodeName()}
	if e.IsText() {
		n.Text = e.Data()
		return n
	}
	for _, name := range e.PropertyNames() {
		if n.Props == nil {
			n.Props = make(map[string]string)
		}
		v, _ := e.Property(name)
		n.Props[name] = fmt.Sprint(v)
	}
	if events := e.ListenerNames(); len(events) > 0 {
		n.Events = events
	}
	for _, c := range e.Children() {
		n.Children = append(n.Children, toJSON(c))
	}
	return n
}
