package cmd

import (
	"fmt"
	"strings"

	"github.com/go-will/will/cmd/will/internal/logger"
	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/engine"
	"github.com/go-will/will/pkg/errors"
	"github.com/go-will/will/showcase"
)

// selectDemo picks the demo named by the first argument, then app.demo from
// will.yaml, then the default demo.
func selectDemo(args []string) (showcase.Demo, error) {
	name := showcase.DefaultDemo
	switch {
	case len(args) > 0:
		name = args[0]
	case cfg != nil && cfg.Demo != "":
		name = cfg.Demo
	}
	demo, ok := showcase.Lookup(name)
	if !ok {
		return showcase.Demo{}, errors.New("cmd.selectDemo", errors.KindConfig,
			fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(showcase.Names(), ", ")))
	}
	return demo, nil
}

// mountDemo mounts demo into doc using the resolved engine settings. A
// container for a non-default root id is created under the body.
func mountDemo(doc *dom.Document, demo showcase.Demo, extra ...engine.Option) (*engine.Root, error) {
	rootID := engine.DefaultRootID
	prune := true
	if cfg != nil {
		rootID = cfg.RootID
		prune = cfg.PruneHooks
	}
	if doc.GetElementByID(rootID) == nil {
		container := doc.CreateElement("div")
		container.SetProperty("id", rootID)
		doc.Body().AppendChild(container)
	}

	opts := []engine.Option{engine.WithRootID(rootID), engine.WithLogger(logger.L)}
	if !prune {
		opts = append(opts, engine.WithoutPruning())
	}
	opts = append(opts, extra...)
	root, err := engine.Mount(doc, demo.Root(), opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("demo mounted", "demo", demo.Name, "root", rootID, "prune", prune)
	return root, nil
}
