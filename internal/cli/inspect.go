package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/opcpack/pkg/io"
	"github.com/matzehuels/opcpack/pkg/render/nodelink"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <package>",
		Short: "Summarize the parts and relationships of a package",
		Long: `Inspect opens a package and lists every reachable part with its content type,
size and number of outgoing relationships, followed by the package-level
relationships. Items present in the container but unreachable are counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := openPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			l, err := pkgio.Describe(pkg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return pkgio.WriteJSON(l, out)
			}
			printListing(out, args[0], l)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the listing as JSON")
	return cmd
}

func printListing(w io.Writer, name string, l *pkgio.Listing) {
	fmt.Fprintln(w, StyleTitle.Render(name))
	printStats(w, len(l.Parts), len(l.Relationships), len(l.Orphans))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(l.Parts))
	for _, p := range l.Parts {
		rows = append(rows, []string{
			p.Partname,
			p.ContentType,
			strconv.Itoa(p.Size),
			strconv.Itoa(len(l.Outgoing(p.Partname))),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Partname", "Content type", "Size", "Rels"}, rows))
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Package relationships"))
	for _, r := range l.Outgoing(pkgio.RootSource) {
		printKeyValue(w, r.ID, nodelink.ShortType(r.Type)+" "+iconArrow+" "+formatTarget(r))
	}

	if len(l.Orphans) > 0 {
		fmt.Fprintln(w)
		printWarning(w, "%d unreachable items will be dropped on save", len(l.Orphans))
		for _, o := range l.Orphans {
			printDetail(w, "%s", o)
		}
	}
}

// formatTarget renders a relationship target, styling external references.
func formatTarget(r pkgio.Relationship) string {
	if r.External {
		return StyleLink.Render(r.Target)
	}
	return r.Target
}
