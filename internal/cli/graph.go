package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/opcpack/pkg/cache"
	"github.com/matzehuels/opcpack/pkg/errors"
	pkgio "github.com/matzehuels/opcpack/pkg/io"
	"github.com/matzehuels/opcpack/pkg/render/nodelink"
)

// Graph output formats.
const (
	graphDOT = "dot"
	graphSVG = "svg"
)

type graphOpts struct {
	format   string
	detailed bool
	external bool
	output   string
	noCache  bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <package|listing.json>",
		Short: "Render the relationship graph as DOT or SVG",
		Long: `Graph draws every reachable part as a node and every relationship as an edge.
The input may be a package or a JSON listing written by "inspect --json".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("format") {
				opts.format = c.Config.Graph.Format
			}
			if !flags.Changed("detailed") {
				opts.detailed = c.Config.Graph.Detailed
			}
			if !flags.Changed("external") {
				opts.external = c.Config.Graph.IncludeExternal
			}
			return c.runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", graphDOT, "output format (dot, svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label parts with content type and size, edges with id and type")
	cmd.Flags().BoolVar(&opts.external, "external", false, "include external relationship targets")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render SVG even if a cached rendering exists")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, input string, opts graphOpts) error {
	l, err := loadListing(cmd, input)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: opts.detailed, External: opts.external})
	var data []byte
	switch opts.format {
	case graphDOT:
		data = []byte(dot)
	case graphSVG:
		data, err = renderSVGCached(cmd, dot, opts.noCache)
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown graph format %q (want %s or %s)", opts.format, graphDOT, graphSVG)
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(cmd.OutOrStdout(), "Wrote %s graph", opts.format)
	printFile(cmd.OutOrStdout(), opts.output)
	return nil
}

// renderSVGCached renders dot to SVG, reusing a cached rendering of the same
// DOT source when one exists.
func renderSVGCached(cmd *cobra.Command, dot string, noCache bool) ([]byte, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	c := newCache(noCache)
	defer c.Close()

	key := cache.Key(graphSVG, dot)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		logger.Debug("using cached rendering", "key", key)
		return data, nil
	}

	stop := timed(logger, "rendered svg")
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering SVG...")
	spinner.Start()
	data, err := nodelink.RenderSVG(dot)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, err
	}
	spinner.Stop()
	stop("bytes", len(data))

	if err := c.Set(ctx, key, data, svgCacheTTL); err != nil {
		logger.Warn("could not cache rendering", "err", err)
	}
	return data, nil
}

// loadListing reads a JSON listing if input ends in .json, otherwise opens
// input as a package and describes it.
func loadListing(cmd *cobra.Command, input string) (*pkgio.Listing, error) {
	if isJSONPath(input) {
		return pkgio.ImportJSON(input)
	}
	pkg, err := openPackage(cmd.Context(), input)
	if err != nil {
		return nil, err
	}
	return pkgio.Describe(pkg)
}
