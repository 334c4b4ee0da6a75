package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"

	"github.com/brandeskopf/xcoord/internal/cache"
	"github.com/brandeskopf/xcoord/internal/config"
	"github.com/brandeskopf/xcoord/internal/render"
	"github.com/brandeskopf/xcoord/xcoord"
)

// spinnerThreshold is the vertex count at or above which Run shows a spinner
// while PositionX computes in a goroutine.
const spinnerThreshold = 500

// Cmd is the xcoord CLI, built from flag parsing the way the teacher's CLI
// is built from NewCLI.
type Cmd struct {
	ConfigPath string
	Align      string
	NoCache    bool
	Verbose    bool
	Help       bool

	validFlags []string
	log        hclog.Logger
}

// NewCmd parses os.Args (skipping argv[0]) into a Cmd.
func NewCmd() *Cmd {
	c := &Cmd{
		validFlags: []string{"config", "align", "no-cache", "verbose", "help"},
	}

	flag.StringVar(&c.ConfigPath, "config", "", "Path to the graph/config YAML file")
	flag.StringVar(&c.Align, "align", "", "Force alignment: UL, UR, DL, or DR")
	flag.BoolVar(&c.NoCache, "no-cache", false, "Skip the coordinate cache")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&c.Help, "help", false, "Show command usage")

	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-") && !c.isValid(arg) {
			fmt.Printf("Unknown flag: %s\n", arg)
			fmt.Println("try -help to know more")
			os.Exit(2)
		}
	}

	flag.Parse()

	level := hclog.Info
	if c.Verbose {
		level = hclog.Debug
	}
	c.log = hclog.New(&hclog.LoggerOptions{
		Name:  "xcoord",
		Level: level,
	})

	return c
}

func (c *Cmd) isValid(f string) bool {
	if idx := strings.Index(f, "="); idx != -1 {
		f = f[:idx]
	}
	for _, valid := range c.validFlags {
		if strings.TrimLeft(f, "-") == valid {
			return true
		}
	}
	return false
}

func (c *Cmd) Usage() {
	h := `
xcoord - Brandes & Koepf horizontal coordinate assignment

Usage: xcoord -config <path> [options]
`
	fmt.Fprint(flag.CommandLine.Output(), strings.TrimPrefix(h, "\n"))
	flag.PrintDefaults()
}

// Run loads the config, builds the graph, consults the cache, computes
// coordinates, and renders the result to stdout.
func (c *Cmd) Run() error {
	if c.Help || c.ConfigPath == "" {
		c.Usage()
		if c.ConfigPath == "" {
			return fmt.Errorf("missing required -config flag")
		}
		return nil
	}

	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return err
	}
	if c.Align != "" {
		cfg.Align = c.Align
	}

	g, err := cfg.ToGraph()
	if err != nil {
		return err
	}
	c.log.Debug("graph loaded", "vertices", len(g.Nodes()))

	var store *cache.Store
	if !c.NoCache && cfg.Cache.Driver != "" {
		store, err = cache.Open(cfg.Cache.Driver, cfg.Cache.DSN)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	xs, report, err := c.position(g, store)
	if err != nil {
		return err
	}

	r := render.New(os.Stdout, nil)
	if err := r.Render(g, xs); err != nil {
		return err
	}

	// report is nil on a cache hit: the cache only persists the final
	// coordinates (§4.9), not the per-alignment widths that produced them,
	// so there is nothing to summarize beyond what Render already showed.
	if report != nil {
		render.Summary(os.Stdout, report.Widths, report.Selected, alignmentWidth(g, report.X), c.colorEnabled())
	}
	return nil
}

func (c *Cmd) colorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// alignmentWidth recomputes the final balanced layout's own width so the
// summary's "final width" line reflects Balance's output, not merely the
// selected alignment's pre-balance width.
func alignmentWidth(g *xcoord.Graph, xs map[xcoord.VertexID]float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	minV, maxV := math.Inf(1), math.Inf(-1)
	for v, x := range xs {
		a, _ := g.Node(v)
		if hi := x + a.Width/2; hi > maxV {
			maxV = hi
		}
		if lo := x - a.Width/2; lo < minV {
			minV = lo
		}
	}
	return maxV - minV
}

// position consults the cache (if configured) before falling back to
// xcoord.PositionXDetail, showing a spinner for large graphs the way the
// teacher's Printer gates its spinner around long-running steps. report is
// nil when the result came from the cache.
func (c *Cmd) position(g *xcoord.Graph, store *cache.Store) (map[xcoord.VertexID]float64, *xcoord.AlignmentReport, error) {
	var hash string
	if store != nil {
		var err error
		hash, err = cache.HashGraph(g)
		if err != nil {
			return nil, nil, err
		}
		if xs, ok, err := store.Lookup(hash); err != nil {
			return nil, nil, err
		} else if ok {
			c.log.Debug("cache hit", "hash", hash)
			return xs, nil, nil
		}
		c.log.Debug("cache miss", "hash", hash)
	}

	report, err := c.computeWithSpinner(g)
	if err != nil {
		return nil, nil, err
	}
	xs := report.X

	if store != nil {
		if err := store.Store(hash, g.GraphAttrs(), xs, time.Now()); err != nil {
			c.log.Warn("failed to write layout cache", "error", err)
		}
	}
	return xs, &report, nil
}

func (c *Cmd) computeWithSpinner(g *xcoord.Graph) (xcoord.AlignmentReport, error) {
	if len(g.Nodes()) < spinnerThreshold {
		return xcoord.PositionXDetail(g)
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = " computing layout..."
	s.Start()
	defer s.Stop()

	type result struct {
		report xcoord.AlignmentReport
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := xcoord.PositionXDetail(g)
		done <- result{report, err}
	}()
	res := <-done
	return res.report, res.err
}
