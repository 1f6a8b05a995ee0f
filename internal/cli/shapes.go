package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isostack/pkg/errors"
)

// shapesCommand creates the shapes command group.
func (c *CLI) shapesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Browse the shape library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShapesList()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every shape in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShapesList()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pick",
		Short: "Choose a shape interactively and print its name",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.shapeLibrary()
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewShapeListModel(lib), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "shape picker")
			}
			m := final.(ShapeListModel)
			if m.Selected == nil {
				return nil
			}
			fmt.Fprintln(stdout, m.Selected.Name)
			return nil
		},
	})
	return cmd
}

func (c *CLI) runShapesList() error {
	lib, err := c.shapeLibrary()
	if err != nil {
		return err
	}
	printInfo("%d shapes (%d 3D, %d 2D)", lib.Len(), len(lib.Solids()), len(lib.Flats()))
	fmt.Fprintln(stdout, renderShapeTable(lib))
	return nil
}
