package cli

import (
	"github.com/spf13/cobra"
)

// catCommand creates the cat command.
func (c *CLI) catCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <package> <partname>",
		Short: "Write the content of a part to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := openPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			name, err := parsePartname(args[1])
			if err != nil {
				return err
			}
			part, err := pkg.PartByName(name)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(part.Blob())
			return err
		},
	}
}
