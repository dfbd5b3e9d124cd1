package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/opcpack/pkg/opc"
)

// repackCommand creates the repack command.
func (c *CLI) repackCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "repack <src> <dst>",
		Short: "Open a package and save it again",
		Long: `Repack reads a package and writes it back out. Unreachable items are dropped,
the manifest is recomposed and relationship items are rewritten.

Use --format to convert between a zip file and an expanded directory:

  opcpack repack deck.pptx deck/ --format dir
  opcpack repack deck/ deck.pptx --format zip`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = c.Config.Save.Format
			}
			dst, err := saveTarget(args[1], format)
			if err != nil {
				return err
			}

			pkg, err := openPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			orphans := len(pkg.Orphans())
			if err := pkg.Save(dst); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Repacked %d parts", len(pkg.Parts()))
			if orphans > 0 {
				printWarning(out, "Dropped %d unreachable items", orphans)
			}
			printFile(out, dst)
			printNextStep(out, "Inspect", appName+" inspect "+dst)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "container format (zip, dir); inferred from dst when empty")
	return cmd
}

// newCommand creates the new command.
func (c *CLI) newCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "new <dst>",
		Short: "Write a fresh presentation package with default parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = c.Config.Save.Format
			}
			dst, err := saveTarget(args[0], format)
			if err != nil {
				return err
			}

			pkg, err := opc.New(opc.WithLogger(loggerFromContext(cmd.Context())))
			if err != nil {
				return err
			}
			if err := pkg.Save(dst); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Created package with %d parts", len(pkg.Parts()))
			printFile(out, dst)
			printNextStep(out, "Inspect", appName+" inspect "+dst)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "container format (zip, dir); inferred from dst when empty")
	return cmd
}
