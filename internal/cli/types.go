package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/opcpack/pkg/contenttype"
)

// typesCommand creates the types command.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types <package>",
		Short: "Show the content-type manifest as loaded and as it would be saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := openPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			composed, err := pkg.Manifest()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printManifest(out, "Loaded", pkg.ContentTypes())
			fmt.Fprintln(out)
			printManifest(out, "Composed", composed)
			return nil
		},
	}
}

func printManifest(w io.Writer, title string, r *contenttype.Registry) {
	fmt.Fprintln(w, StyleTitle.Render(title))
	if r == nil || r.Len() == 0 {
		printDetail(w, "no entries")
		return
	}

	rows := make([][]string, 0, r.Len())
	for _, d := range r.Defaults() {
		rows = append(rows, []string{"Default", d.Extension, d.ContentType})
	}
	for _, o := range r.Overrides() {
		rows = append(rows, []string{"Override", o.PartName.String(), o.ContentType})
	}
	fmt.Fprintln(w, renderTable([]string{"Kind", "Key", "Content type"}, rows))
}
