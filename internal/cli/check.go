package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/diagram/editor"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/render"
)

func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a diagram's structure and compile it without writing output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := readDiagram(args[0])
			if err != nil {
				return err
			}
			if err := diagram.CheckTree(list); err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			s, _, err := c.loadSettings()
			if err != nil {
				loggerFromContext(cmd.Context()).Warn("ignoring settings", "error", err)
			}
			res := runner.Compile(cmd.Context(), list, render.Options{Canvas: s.Canvas})
			if len(res.Diagnostics) > 0 {
				printWarning("%d component(s) placed with %d diagnostic(s)", res.Placed(), len(res.Diagnostics))
				for _, d := range res.Diagnostics {
					if d.Level == diagram.LevelError {
						printError("%s", d.String())
						continue
					}
					printDetail("%s", d.String())
				}
				return nil
			}
			printSuccess("%s is valid", args[0])
			printStats(len(list), res.Placed(), 0, false)
			return nil
		},
	}
}

func (c *CLI) anchorsCommand() *cobra.Command {
	var near string
	cmd := &cobra.Command{
		Use:   "anchors <file> <id>",
		Short: "List the anchors a component offers for attaching shapes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := readDiagram(args[0])
			if err != nil {
				return err
			}
			id, err := resolveID(list, args[1])
			if err != nil {
				return err
			}
			comp, _ := diagram.Find(list, id)

			if near != "" {
				p, err := parsePoint(near)
				if err != nil {
					return err
				}
				choice := editor.ClosestAnchor(p, comp)
				printKeyValue("position", choice.Position)
				printKeyValue("anchor", choice.AttachmentPoint)
				return nil
			}

			printInfo("%s %s", StyleHighlight.Render(comp.Shape), StyleDim.Render(comp.ID))
			for _, name := range editor.AvailableAnchors(comp) {
				if a, ok := comp.Anchor(name); ok {
					printKeyValue(name, fmt.Sprintf("%g, %g", a.X, a.Y))
				} else {
					printKeyValue(name, "")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&near, "near", "", "print the anchor closest to x,y in shape coordinates")
	return cmd
}

// parsePoint parses "x,y".
func parsePoint(s string) (diagram.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return diagram.Point{}, errors.New(errors.ErrCodeInvalidInput, "point must be x,y, got %q", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return diagram.Point{}, errors.New(errors.ErrCodeInvalidInput, "point must be numeric x,y, got %q", s)
	}
	return diagram.Point{X: x, Y: y}, nil
}
