// Package config loads and validates the YAML documents that describe a
// graph to be positioned: graph-level parameters, an optional cache store,
// and the node/edge list itself. It follows the teacher's probe.go loading
// pattern (goccy/go-yaml decode + go-playground/validator struct tags)
// generalized from workflow definitions to graph definitions.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/brandeskopf/xcoord/internal/rankassign"
	"github.com/brandeskopf/xcoord/xcoord"
)

// NodeInput is one YAML-declared vertex. Rank and Order are optional: when
// either is nil for any node, rankassign.Assign computes a layering for the
// whole graph, and each node missing either value takes its rank and order
// from it. Nodes that supply both keep the supplied values.
type NodeInput struct {
	ID       string  `yaml:"id" validate:"required"`
	Width    float64 `yaml:"width" validate:"gte=0"`
	Dummy    string  `yaml:"dummy" validate:"omitempty,oneof=edge border borderLeft borderRight"`
	LabelPos string  `yaml:"labelpos" validate:"omitempty,oneof=l c r L C R"`
	Rank     *int    `yaml:"rank"`
	Order    *int    `yaml:"order"`
}

// EdgeInput is one YAML-declared directed edge, referencing node IDs.
type EdgeInput struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// GraphInput is the full node/edge list for one graph.
type GraphInput struct {
	Nodes []NodeInput `yaml:"nodes" validate:"required,dive"`
	Edges []EdgeInput `yaml:"edges" validate:"dive"`
}

// CacheConfig selects and configures the coordinate cache store. Driver is
// left empty to mean "no cache".
type CacheConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=sqlite3 mysql postgres"`
	DSN    string `yaml:"dsn" validate:"required_with=Driver"`
}

// Config is the top-level document accepted by the xcoord CLI.
type Config struct {
	NodeSep float64    `yaml:"nodesep" validate:"gte=0"`
	EdgeSep float64    `yaml:"edgesep" validate:"gte=0"`
	Align   string     `yaml:"align" validate:"omitempty,oneof=UL UR DL DR ul ur dl dr"`
	Passes  int        `yaml:"passes"`
	Cache   CacheConfig `yaml:"cache"`
	Graph   GraphInput `yaml:"graph"`
}

// Load reads and validates the config document at path, the way the
// teacher's Probe.Load reads a workflow YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError("load", fmt.Sprintf("reading %s", path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newError("load", "decoding yaml", err)
	}
	if cfg.Passes <= 0 {
		cfg.Passes = 4
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, newError("load", "validating config", err)
	}

	return &cfg, nil
}

// ToGraph converts the loaded GraphInput into an *xcoord.Graph, assigning
// ranks and orders via rankassign when the YAML document left any of them
// unspecified.
func (c *Config) ToGraph() (*xcoord.Graph, error) {
	ids := make(map[string]xcoord.VertexID, len(c.Graph.Nodes))
	needsAssign := false
	for _, n := range c.Graph.Nodes {
		if n.Rank == nil || n.Order == nil {
			needsAssign = true
			break
		}
	}

	var assigned map[string]rankassign.Assignment
	if needsAssign {
		nodes := make([]rankassign.Node, len(c.Graph.Nodes))
		for i, n := range c.Graph.Nodes {
			nodes[i] = rankassign.Node{ID: n.ID, Width: n.Width}
		}
		edges := make([]rankassign.Edge, len(c.Graph.Edges))
		for i, e := range c.Graph.Edges {
			edges[i] = rankassign.Edge{From: e.From, To: e.To}
		}
		assigned = rankassign.Assign(nodes, edges, c.Passes)
	}

	g := xcoord.NewGraph(xcoord.GraphAttrs{
		NodeSep: c.NodeSep,
		EdgeSep: c.EdgeSep,
		Align:   c.Align,
	})

	for _, n := range c.Graph.Nodes {
		rank, order := 0, 0
		if n.Rank != nil && n.Order != nil {
			rank, order = *n.Rank, *n.Order
		} else if a, ok := assigned[n.ID]; ok {
			rank, order = a.Rank, a.Order
		}

		id := g.AddAutoVertex(xcoord.Attrs{
			Rank:     rank,
			Order:    order,
			Width:    n.Width,
			Dummy:    parseDummy(n.Dummy),
			LabelPos: parseLabelPos(n.LabelPos),
		})
		ids[n.ID] = id
	}

	for _, e := range c.Graph.Edges {
		from, ok := ids[e.From]
		if !ok {
			return nil, newError("to_graph", fmt.Sprintf("edge references unknown node %q", e.From), nil)
		}
		to, ok := ids[e.To]
		if !ok {
			return nil, newError("to_graph", fmt.Sprintf("edge references unknown node %q", e.To), nil)
		}
		g.AddEdge(from, to)
	}

	return g, nil
}

func parseDummy(s string) xcoord.DummyKind {
	switch s {
	case "edge":
		return xcoord.DummyEdge
	case "border":
		return xcoord.DummyBorder
	case "borderLeft":
		return xcoord.DummyBorderLeft
	case "borderRight":
		return xcoord.DummyBorderRight
	default:
		return xcoord.DummyNone
	}
}

func parseLabelPos(s string) xcoord.LabelPos {
	if len(s) == 0 {
		return xcoord.LabelCenter
	}
	switch s[0] {
	case 'l', 'L':
		return xcoord.LabelLeft
	case 'r', 'R':
		return xcoord.LabelRight
	default:
		return xcoord.LabelCenter
	}
}
