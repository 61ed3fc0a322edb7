package main

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
)

//go:embed templates/*.tmpl
var spiderTemplates embed.FS

// spiderKinds are the templates genspider accepts.
var spiderKinds = []string{"data", "image"}

// errUnknownTemplate is returned for a template other than spiderKinds.
var errUnknownTemplate = errors.New("unknown template (choose data or image)")

// spiderData is passed to the spider templates.
type spiderData struct {
	// Name is the spider name, used for output file names.
	Name string
}

// NewGenspiderCmd creates the genspider command.
func NewGenspiderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genspider <name> <tmpl>",
		Short: "Generate a spider from a template",
		Long: `Genspider writes <name>.go, a runnable spider built on the looter package.

Templates:
  data   scrape records from listing pages and save them as JSON
  image  collect image links from listing pages and download them

With --async the spider fetches pages and saves images concurrently.

Examples:
  # Spider that saves scraped records to konachan.json
  looter genspider konachan data

  # Concurrent image downloader
  looter genspider konachan image --async

  # Overwrite an existing konachan.go
  looter genspider konachan image -f`,
		Args: cobra.ExactArgs(2),
		RunE: runGenspiderCmd,
	}

	cmd.Flags().Bool("async", false, "Use the concurrent variant of the template")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing spider file")

	return cmd
}

// runGenspiderCmd executes the genspider command.
func runGenspiderCmd(cmd *cobra.Command, args []string) error {
	async, err := cmd.Flags().GetBool("async")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	path, err := generateSpider(args[0], args[1], async, force)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created spider: %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Edit the selectors, then run it with: go run %s\n", path)
	return nil
}

// generateSpider renders the template kind into name.go and returns the
// written path.
func generateSpider(name, kind string, async, force bool) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".go")
	if name == "" {
		return "", errors.New("spider name must not be empty")
	}
	if !slices.Contains(spiderKinds, kind) {
		return "", fmt.Errorf("%w: %q", errUnknownTemplate, kind)
	}
	if async {
		kind += "_async"
	}

	path := name + ".go"
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("spider already exists: %s (use -f to overwrite)", path)
		}
	}

	tmpl, err := template.ParseFS(spiderTemplates, "templates/"+kind+".tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to read spider template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, spiderData{Name: filepath.Base(name)}); err != nil {
		return "", fmt.Errorf("failed to render spider template: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write spider: %w", err)
	}
	return path, nil
}
