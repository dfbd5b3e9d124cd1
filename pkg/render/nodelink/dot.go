package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	pkgio "github.com/matzehuels/opcpack/pkg/io"
	"github.com/matzehuels/opcpack/pkg/observability"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds content type and size to part labels and the
	// relationship type to edges. When false, only partnames are shown.
	Detailed bool

	// External includes external relationship targets as separate nodes.
	External bool
}

const rootLabel = "package"

// ToDOT converts a package listing to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// The package root is drawn as a filled ellipse; external targets, when
// enabled, as dashed ellipses.
func ToDOT(l *pkgio.Listing, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=lightgrey];\n", pkgio.RootSource, rootLabel)
	for _, p := range l.Parts {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", p.Partname, fmtLabel(p, opts.Detailed))
	}

	externals := make(map[string]bool)
	if opts.External {
		for _, r := range l.Relationships {
			if r.External && !externals[r.Target] {
				externals[r.Target] = true
				fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, style=dashed];\n", externalID(r.Target), r.Target)
			}
		}
	}

	buf.WriteString("\n")
	for _, r := range l.Relationships {
		to := r.Target
		if r.External {
			if !opts.External {
				continue
			}
			to = externalID(r.Target)
		}
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", r.Source, to, r.ID+" "+ShortType(r.Type))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", r.Source, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p pkgio.Part, detailed bool) string {
	if !detailed {
		return p.Partname
	}
	return p.Partname + "\n" + p.ContentType + "\n" + strconv.Itoa(p.Size) + " bytes"
}

func externalID(ref string) string { return "ext:" + ref }

// ShortType returns the last segment of a relationship type URI, e.g.
// "slideLayout" for .../relationships/slideLayout.
func ShortType(relType string) string {
	return path.Base(strings.TrimRight(relType, "/"))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) (svg []byte, err error) {
	start := time.Now()
	observability.Render().OnRenderStart("svg", strings.Count(dot, "];\n"))
	defer func() {
		observability.Render().OnRenderComplete("svg", time.Since(start), err)
	}()

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
