package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/opcpack/pkg/opc"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/render/nodelink"
)

// relsCommand creates the rels command.
func (c *CLI) relsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rels <package> [partname]",
		Short: "List the relationships of the package or of one part",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := openPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			source := packuri.PackageURI
			rs := pkg.Relationships()
			if len(args) == 2 {
				name, err := parsePartname(args[1])
				if err != nil {
					return err
				}
				part, err := pkg.PartByName(name)
				if err != nil {
					return err
				}
				source, rs = name, part.Relationships()
			}

			rows, err := relRows(rs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render(source.String()))
			if len(rows) == 0 {
				printDetail(out, "no relationships")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Id", "Type", "Target", "Mode"}, rows))
			return nil
		},
	}
}

func relRows(rs *opc.Relationships) ([][]string, error) {
	rows := make([][]string, 0, rs.Len())
	for _, r := range rs.All() {
		if r.IsExternal() {
			rows = append(rows, []string{r.ID, nodelink.ShortType(r.Type), StyleLink.Render(r.ExternalRef()), "External"})
			continue
		}
		name, err := r.Target().Partname()
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{r.ID, nodelink.ShortType(r.Type), name.String(), "Internal"})
	}
	return rows, nil
}
