package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/talgya/cellmap/internal/config"
)

// Options represents the command-line parameters.
type Options struct {
	ConfigPath string
	Width      int
	Height     int
	Seed       int64
	Paths      pathList
	ASCII      bool
	Relief     bool
	Catalog    string
	Replay     string
	Debug      bool

	set map[string]bool
}

// NewOptions returns Options populated with defaults. configPath is
// usually taken from CELLMAP_CONFIG.
func NewOptions(configPath string) *Options {
	return &Options{ConfigPath: configPath, set: map[string]bool{}}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "YAML config file")
	fs.IntVar(&o.Width, "width", o.Width, "map width in cells")
	fs.IntVar(&o.Height, "height", o.Height, "map height in cells")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "generation seed (0 = random)")
	fs.Var(&o.Paths, "path", "path query x1,y1,x2,y2 (repeatable)")
	fs.BoolVar(&o.ASCII, "ascii", o.ASCII, "print an ASCII preview")
	fs.BoolVar(&o.Relief, "relief", o.Relief, "compute the relief layer")
	fs.StringVar(&o.Catalog, "catalog", o.Catalog, "SQLite run catalog path (enables the catalog)")
	fs.StringVar(&o.Replay, "replay", o.Replay, "regenerate a run from the catalog by ID")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "debug logging")
}

// Parse parses args and remembers which flags were given explicitly.
func (o *Options) Parse(fs *flag.FlagSet, args []string) error {
	o.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return nil
}

// Apply overrides cfg with every flag that was set on the command line.
func (o *Options) Apply(cfg *config.Config) {
	if o.set["width"] {
		cfg.Map.Width = o.Width
	}
	if o.set["height"] {
		cfg.Map.Height = o.Height
	}
	if o.set["seed"] {
		cfg.Generation.Seed = o.Seed
	}
	if o.set["relief"] {
		cfg.Relief.Enabled = o.Relief
	}
	if o.Catalog != "" {
		cfg.Catalog.Enabled = true
		cfg.Catalog.Path = o.Catalog
	}
}

// PathSpec is one requested path query.
type PathSpec struct {
	X1, Y1, X2, Y2 int
}

func (p PathSpec) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", p.X1, p.Y1, p.X2, p.Y2)
}

// ParsePathSpec parses "x1,y1,x2,y2".
func ParsePathSpec(s string) (PathSpec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return PathSpec{}, fmt.Errorf("path %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return PathSpec{}, fmt.Errorf("path %q: %w", s, err)
		}
		v[i] = n
	}
	return PathSpec{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}

type pathList []PathSpec

func (l *pathList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, p := range *l {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func (l *pathList) Set(s string) error {
	p, err := ParsePathSpec(s)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}
