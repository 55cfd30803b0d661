package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/module"

	"github.com/go-will/will/cmd/will/internal/templates"
	"github.com/go-will/will/pkg/errors"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <directory> [module-path]",
		Short: "Create a new will project",
		Long: `Create a new will project in a new directory.

This command creates:
  - A new directory at the specified path
  - go.mod with the specified module path
  - will.yaml with default engine and log settings
  - main.go with a starter component hosted in the terminal

The project name is derived from the directory basename.
The module path defaults to the project name if not specified.

Examples:
  will init myapp
  will init myapp github.com/username/myapp
  will init ./projects/myapp`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), args)
		},
	}
}

// runInit creates a new project. The first argument is the directory to
// create; its basename is the project name. An optional second argument
// overrides the Go module path, which otherwise defaults to the project name.
func runInit(out io.Writer, args []string) error {
	raw := args[0]
	if strings.HasPrefix(raw, "~") {
		return errors.New("cmd.init", errors.KindConfig,
			fmt.Errorf("tilde (~) is not expanded by will; use an absolute path or $HOME instead"))
	}

	dir := filepath.Clean(raw)
	if err := validateDirectory(dir); err != nil {
		return errors.New("cmd.init", errors.KindConfig, err)
	}

	projectName := filepath.Base(dir)
	modulePath := projectName
	if len(args) > 1 {
		modulePath = args[1]
	}

	if err := validateProjectName(projectName); err != nil {
		return errors.New("cmd.init", errors.KindConfig,
			fmt.Errorf("invalid project name %q (derived from directory basename): %w", projectName, err))
	}
	if err := module.CheckImportPath(modulePath); err != nil {
		return errors.New("cmd.init", errors.KindConfig, fmt.Errorf("invalid module path: %w", err))
	}

	if err := scaffoldProject(out, dir, &templates.TemplateData{
		ModulePath: modulePath,
		AppName:    projectName,
		Version:    strings.TrimPrefix(Version, "v"),
	}); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Project created successfully!\n\n")
	fmt.Fprintf(out, "Next steps:\n")
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintf(out, "  go mod tidy\n")
	fmt.Fprintf(out, "  go run .\n")
	return nil
}

// scaffoldProject creates the project directory and writes the init
// templates into it. A partially written directory is removed on failure.
func scaffoldProject(out io.Writer, dir string, data *templates.TemplateData) error {
	if _, err := os.Stat(dir); err == nil {
		return errors.New("cmd.init", errors.KindConfig, fmt.Errorf("directory %q already exists", dir))
	}

	fmt.Fprintf(out, "Creating new will project: %s\n", data.AppName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New("cmd.init", errors.KindIO, fmt.Errorf("failed to create directory: %w", err))
	}

	files, err := templates.GetInitFiles()
	if err != nil {
		return errors.New("cmd.init", errors.KindIO, err)
	}
	for _, f := range files {
		if err := writeInitTemplate(dir, f, data); err != nil {
			safeRemoveAll(dir)
			return errors.New("cmd.init", errors.KindIO, err)
		}
		fmt.Fprintf(out, "  Created %s\n", templates.DestName(f))
	}
	return nil
}

func writeInitTemplate(projectDir, templatePath string, data *templates.TemplateData) error {
	content, err := templates.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	processed, err := templates.ProcessTemplate(string(content), data)
	if err != nil {
		return fmt.Errorf("failed to process template %s: %w", templatePath, err)
	}

	destName := templates.DestName(templatePath)
	if err := os.WriteFile(filepath.Join(projectDir, destName), []byte(processed), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", destName, err)
	}
	return nil
}

// validateDirectory rejects directory paths that would be dangerous to
// create or clean up: filesystem roots, the current and parent directory,
// and root-level absolute paths such as /etc.
func validateDirectory(dir string) error {
	switch dir {
	case "", "/", ".", "..":
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	if isVolumeRoot(dir) {
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	if filepath.IsAbs(dir) && isVolumeRoot(filepath.Dir(dir)) {
		return fmt.Errorf("refusing to create project at root-level path %q", dir)
	}
	return nil
}

// isVolumeRoot reports whether dir is a filesystem root.
func isVolumeRoot(dir string) bool {
	return dir == filepath.VolumeName(dir)+string(filepath.Separator)
}

// safeRemoveAll removes a directory only if the path passes
// validateDirectory. It is called on cleanup paths, so it never fails.
func safeRemoveAll(dir string) {
	if validateDirectory(dir) != nil {
		return
	}
	os.RemoveAll(dir)
}

var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// validateProjectName checks that a project name starts with a letter and
// contains only letters, digits, underscores, and hyphens.
func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with a dot")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("project name cannot start with a hyphen")
	}
	if !validProjectName.MatchString(name) {
		return fmt.Errorf("project name must start with a letter and contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}
