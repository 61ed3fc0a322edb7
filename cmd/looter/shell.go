package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/looter/internal/config"
	"github.com/nao1215/looter/internal/document"
	"github.com/nao1215/looter/internal/downloader"
	"github.com/nao1215/looter/internal/export"
	"github.com/nao1215/looter/internal/fetcher"
	"github.com/nao1215/looter/internal/preview"
	"github.com/nao1215/looter/internal/rank"
	"github.com/nao1215/looter/internal/robots"
)

const shellBanner = `
Available commands:
    url                        The url of the page you crawled.
    title                      The title of the page.
    css <selector>             Text of the elements matching a CSS selector.
    xpath <expr>               Nodes matching an XPath expression.
    attrs <attr> <selector>    An attribute of the elements matching a CSS selector.
    links [search]             All the links of the page.
    relinks <pattern>          Absolute links matching a regular expression.
    fetch <url>                Crawl another page.
    view [encoding]            View the page in your browser. (test rendering)
    save_imgs <selector>       Save the images linked by the matching elements.
    save_json <file> <selector>
                               Save the matching elements as records
                               (.json, .md or .db by extension).
    rank [site]                Reach and popularity of a site in alexa.
    robots                     URLs listed in the robots.txt of the site.
    help                       Show this screen.
    exit                       Leave the shell.

For more info on selectors, refer to:
    [css]: https://developer.mozilla.org/docs/Web/CSS/CSS_selectors
    [xpath]: https://developer.mozilla.org/docs/Web/XPath
`

const shellPrompt = ">>> "

// errUsage reports a command called with missing arguments.
var errUsage = errors.New("missing argument (type help for usage)")

// NewShellCmd creates the shell command.
func NewShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell [url]",
		Short: "Open an interactive shell on a page",
		Long: `Shell fetches a page and reads commands that query it with CSS selectors
and XPath expressions, list its links and save its images or elements.

When url is omitted the shell asks for it.

Examples:
  # Try selectors on a listing page
  looter shell konachan.net/post

  # Save images into ./images with random suffixes
  looter shell -o images -r konachan.net/post`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShellCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Directory to save images into")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers, "Number of concurrent image downloads")
	cmd.Flags().BoolP("random-name", "r", false, "Append a random suffix to saved image names")
	cmd.Flags().Int("max-name-length", config.DefaultMaxNameLength, "Maximum length of saved image names")

	return cmd
}

// runShellCmd executes the shell command.
func runShellCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
		return err
	}
	if cfg.RandomName, err = cmd.Flags().GetBool("random-name"); err != nil {
		return err
	}
	if cfg.MaxNameLength, err = cmd.Flags().GetInt("max-name-length"); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var target string
	if len(args) > 0 {
		target = args[0]
	}
	return newShell(cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout()).run(ctx, target)
}

// shell is an interactive session on one page at a time.
type shell struct {
	cfg    *config.Config
	logger *slog.Logger
	in     *bufio.Scanner
	out    io.Writer

	client *fetcher.Client
	site   string
	resp   *fetcher.Response
	doc    *document.Document

	// open shows a saved page; replaced in tests.
	open         func(path string) error
	rankEndpoint string
}

func newShell(cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) *shell {
	return &shell{
		cfg:          cfg,
		logger:       logger,
		in:           bufio.NewScanner(in),
		out:          out,
		open:         preview.Open,
		rankEndpoint: rank.DefaultEndpoint,
	}
}

// run loads target, asking for it when empty, and processes commands
// until exit or end of input.
func (s *shell) run(ctx context.Context, target string) error {
	if strings.TrimSpace(target) == "" {
		fmt.Fprint(s.out, "Which site do you want to crawl?\nurl: ")
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return err
			}
			return errors.New("no url given")
		}
		target = strings.TrimSpace(s.in.Text())
	}
	if err := s.load(ctx, target); err != nil {
		return err
	}
	fmt.Fprint(s.out, shellBanner)

	for {
		fmt.Fprint(s.out, shellPrompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		quit, err := s.execute(ctx, s.in.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// load fetches target and makes it the current page. The client is
// rebuilt when the site changes so that per-site settings apply.
func (s *shell) load(ctx context.Context, target string) error {
	site := fetcher.Domain(target)
	if s.client == nil || site != s.site {
		client, err := newClient(s.cfg, target, s.logger)
		if err != nil {
			return err
		}
		s.client = client
		s.site = site
	}

	resp, err := s.client.SendRequest(ctx, target)
	if err != nil {
		return err
	}
	doc, err := resp.Document()
	if err != nil {
		return err
	}
	s.resp = resp
	s.doc = doc
	fmt.Fprintf(s.out, "[%d] %s\n", resp.StatusCode, resp.URL)
	return nil
}

// execute runs one command line. quit reports a request to leave.
func (s *shell) execute(ctx context.Context, line string) (quit bool, err error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(s.out, shellBanner)
		return false, nil
	case "url":
		fmt.Fprintln(s.out, s.resp.URL)
		return false, nil
	case "title":
		fmt.Fprintln(s.out, s.doc.Title())
		return false, nil
	case "css":
		return false, s.css(arg)
	case "xpath":
		return false, s.xpath(arg)
	case "attrs":
		return false, s.attrs(arg)
	case "links":
		s.printLines(s.doc.Links(document.WithSearch(arg)))
		return false, nil
	case "relinks":
		return false, s.relinks(arg)
	case "fetch":
		if arg == "" {
			return false, errUsage
		}
		return false, s.load(ctx, arg)
	case "view":
		return false, s.view(arg)
	case "save_imgs":
		return false, s.saveImages(ctx, arg)
	case "save_json":
		return false, s.saveRecords(ctx, arg)
	case "rank":
		return false, s.rank(ctx, arg)
	case "robots":
		urls, err := robots.NewClient(s.client).Fetch(ctx, s.resp.URL)
		if err != nil {
			return false, err
		}
		s.printLines(urls)
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q (type help for usage)", name)
	}
}

func (s *shell) printLines(lines []string) {
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "(no matches)")
		return
	}
	for _, l := range lines {
		fmt.Fprintln(s.out, l)
	}
}

func (s *shell) css(selector string) error {
	if selector == "" {
		return errUsage
	}
	s.printLines(s.doc.Texts(selector))
	return nil
}

func (s *shell) xpath(expr string) error {
	if expr == "" {
		return errUsage
	}
	nodes, err := s.doc.XPath(expr)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, document.Render(n))
	}
	s.printLines(lines)
	return nil
}

func (s *shell) attrs(arg string) error {
	attr, selector, _ := strings.Cut(arg, " ")
	selector = strings.TrimSpace(selector)
	if attr == "" || selector == "" {
		return errUsage
	}
	s.printLines(s.doc.Attrs(selector, attr))
	return nil
}

func (s *shell) relinks(pattern string) error {
	if pattern == "" {
		return errUsage
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.printLines(s.doc.ReLinks(re))
	return nil
}

func (s *shell) view(encoding string) error {
	text, err := s.resp.Text()
	if err != nil {
		return err
	}
	path := filepath.Join(s.cfg.OutputDir, preview.Path(""))
	if err := preview.Write(path, text, encoding); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "wrote %s\n", path)
	return s.open(path)
}

func (s *shell) saveImages(ctx context.Context, selector string) error {
	if selector == "" {
		return errUsage
	}
	targets := s.doc.Targets(selector)
	if len(targets) == 0 {
		fmt.Fprintln(s.out, "(no matches)")
		return nil
	}

	d := downloader.New(s.client,
		downloader.WithDir(s.cfg.OutputDir),
		downloader.WithWorkers(s.cfg.Workers),
		downloader.WithMaxNameLength(s.cfg.MaxNameLength),
		downloader.WithLogger(s.logger),
	)
	paths, err := d.SaveConcurrently(ctx, targets, s.cfg.RandomName)
	saved := 0
	for _, p := range paths {
		if p != "" {
			saved++
			fmt.Fprintf(s.out, "Saved %s\n", p)
		}
	}
	fmt.Fprintf(s.out, "saved %d of %d images\n", saved, len(targets))
	return err
}

// saveRecords stores one record per matching element: its attributes and
// its text under "text".
func (s *shell) saveRecords(ctx context.Context, arg string) error {
	file, selector, _ := strings.Cut(arg, " ")
	selector = strings.TrimSpace(selector)
	if file == "" || selector == "" {
		return errUsage
	}

	nodes := s.doc.Nodes(selector)
	records := make([]export.Record, 0, len(nodes))
	for _, n := range nodes {
		r := export.Record{"text": document.Text(n)}
		for _, a := range n.Attr {
			r[a.Key] = a.Val
		}
		records = append(records, r)
	}

	path, err := export.Save(ctx, file, s.resp.URL, records, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved %d records to %s\n", len(records), path)
	return nil
}

func (s *shell) rank(ctx context.Context, site string) error {
	if site == "" {
		site = fetcher.Domain(s.resp.URL)
	}
	r, err := rank.NewClient(s.client,
		rank.WithEndpoint(s.rankEndpoint),
		rank.WithLogger(s.logger),
	).Lookup(ctx, site)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "[%s] REACH: %d POPULARITY: %d\n", r.Site, r.Reach, r.Popularity)
	return nil
}
