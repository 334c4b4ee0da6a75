// Package cache memoizes xcoord.PositionX results behind a content hash of
// the input graph and parameters, the way the teacher's db package wraps a
// pluggable *sql.DB behind a small store type. Three drivers are registered
// so Open can select any of them by name at runtime: sqlite3, mysql,
// postgres. The SQL statements below (schema, "?" placeholders, upsert) are
// written in SQLite's dialect.
package cache

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"github.com/brandeskopf/xcoord/xcoord"
)

// Store wraps a *sql.DB holding the single-table layout cache:
// layouts(graph_hash, nodesep, edgesep, align, coords, computed_at).
type Store struct {
	db     *sql.DB
	driver string
}

// Open opens (creating if necessary) the layouts table against the given
// driver/dsn pair and returns a ready-to-use Store.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, newError("open", fmt.Sprintf("opening %s store", driver), err)
	}
	if err := db.Ping(); err != nil {
		return nil, newError("open", fmt.Sprintf("pinging %s store", driver), err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS layouts (
	graph_hash TEXT PRIMARY KEY,
	nodesep REAL,
	edgesep REAL,
	align TEXT,
	coords BLOB,
	computed_at TIMESTAMP
)`)
	if err != nil {
		return newError("ensure_schema", "creating layouts table", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the cached coordinate map for hash, if present.
func (s *Store) Lookup(hash string) (map[xcoord.VertexID]float64, bool, error) {
	row := s.db.QueryRow(`SELECT coords FROM layouts WHERE graph_hash = ?`, hash)

	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, newError("lookup", "querying layouts", err)
	}

	var raw map[string]float64
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, false, newError("lookup", "decoding cached coords", err)
	}
	xs := make(map[xcoord.VertexID]float64, len(raw))
	for k, v := range raw {
		var id int
		if _, err := fmt.Sscanf(k, "%d", &id); err != nil {
			return nil, false, newError("lookup", "decoding cached vertex id", err)
		}
		xs[xcoord.VertexID(id)] = v
	}
	return xs, true, nil
}

// Store persists xs under hash, along with the parameters used to compute it.
func (s *Store) Store(hash string, attrs xcoord.GraphAttrs, xs map[xcoord.VertexID]float64, computedAt time.Time) error {
	raw := make(map[string]float64, len(xs))
	for id, x := range xs {
		raw[fmt.Sprintf("%d", id)] = x
	}
	blob, err := json.Marshal(raw)
	if err != nil {
		return newError("store", "encoding coords", err)
	}

	_, err = s.db.Exec(`
INSERT INTO layouts (graph_hash, nodesep, edgesep, align, coords, computed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(graph_hash) DO UPDATE SET
	nodesep = excluded.nodesep,
	edgesep = excluded.edgesep,
	align = excluded.align,
	coords = excluded.coords,
	computed_at = excluded.computed_at
`, hash, attrs.NodeSep, attrs.EdgeSep, attrs.Align, blob, computedAt)
	if err != nil {
		return newError("store", "writing layouts row", err)
	}
	return nil
}

// HashGraph computes a stable blake2b-256 content hash over g's vertices
// (in ID order, with their rank/order/width/dummy/labelpos), its edges, and
// its graph-level parameters. Two structurally identical graphs hash equal
// regardless of insertion order, since vertex IDs are sorted first.
func HashGraph(g *xcoord.Graph) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", newError("hash_graph", "constructing hasher", err)
	}

	var buf bytes.Buffer
	attrs := g.GraphAttrs()
	fmt.Fprintf(&buf, "nodesep=%g;edgesep=%g;align=%s\n", attrs.NodeSep, attrs.EdgeSep, attrs.Align)

	ids := g.Nodes()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		a, _ := g.Node(id)
		fmt.Fprintf(&buf, "v %d rank=%d order=%d width=%g dummy=%d labelpos=%d\n",
			id, a.Rank, a.Order, a.Width, a.Dummy, a.LabelPos)
		edges := g.OutEdges(id)
		sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })
		for _, e := range edges {
			fmt.Fprintf(&buf, "e %d -> %d\n", e.From, e.To)
		}
	}

	if _, err := h.Write(buf.Bytes()); err != nil {
		return "", newError("hash_graph", "writing hash input", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
