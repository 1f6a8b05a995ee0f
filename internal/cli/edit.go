package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/diagram/editor"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/observability"
	"github.com/matzehuels/isostack/pkg/render"
	"github.com/matzehuels/isostack/pkg/shapes"
)

// editFunc applies one composition operation. A returned error means the
// arguments could not be resolved; editor rejections travel in the Outcome.
type editFunc func(list []diagram.Component, lib *shapes.Library) ([]diagram.Component, editor.Outcome, error)

// editFile loads path, applies op, recompiles so stored positions are
// current, and writes the result back. The file is untouched when op is
// rejected.
func (c *CLI) editFile(cmd *cobra.Command, path, name string, op editFunc) (editor.Outcome, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner()
	if err != nil {
		return editor.Outcome{}, err
	}
	defer runner.Close()

	list, err := readDiagram(path)
	if err != nil {
		return editor.Outcome{}, err
	}

	out, o, err := op(list, runner.Library)
	if err != nil {
		return o, err
	}
	observability.Editor().OnEdit(ctx, name, len(o.Affected), o.Err)
	logDiagnostics(logger, o.Diagnostics)
	if o.Err != nil {
		return o, o.Err
	}

	s, _, err := c.loadSettings()
	if err != nil {
		logger.Warn("ignoring settings", "error", err)
	}
	res := runner.Compile(ctx, out, render.Options{Canvas: s.Canvas})
	if err := writeDiagram(path, res.Components); err != nil {
		return o, err
	}
	logger.Debug("edited diagram", "op", name, "affected", len(o.Affected), "components", len(res.Components))
	return o, nil
}

func (c *CLI) newCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty diagram file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := writeDiagram(path, nil); err != nil {
				return err
			}
			printSuccess("Created %s", path)
			printNextStep("Add a root shape", "isostack add "+path+" microservice")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) addCommand() *cobra.Command {
	var on, at, anchor string
	cmd := &cobra.Command{
		Use:   "add <file> <shape>",
		Short: "Add a 3D shape, as the root or on a face of another component",
		Long: `Add a 3D shape to the diagram.

The first shape added becomes the root at the canvas center. Every later
shape must be attached to an existing component with --on, at a face
(--at, default "top") or at a named anchor of that component (--anchor).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.editFile(cmd, args[0], "add", func(list []diagram.Component, lib *shapes.Library) ([]diagram.Component, editor.Outcome, error) {
				sel, err := resolveID(list, on)
				if err != nil {
					return list, editor.Outcome{}, err
				}
				out, o := editor.Add3D(list, lib, args[1], at, anchor, sel)
				return out, o, nil
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s", StyleHighlight.Render(args[1]))
			printKeyValue("id", o.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "component to attach to (id or unique id prefix)")
	cmd.Flags().StringVar(&at, "at", editor.DefaultPosition, "face of the target to attach to")
	cmd.Flags().StringVar(&anchor, "anchor", "", "named anchor of the target; overrides --at")
	return cmd
}

func (c *CLI) decorateCommand() *cobra.Command {
	var on, face string
	cmd := &cobra.Command{
		Use:   "decorate <file> <shape>",
		Short: "Weld a 2D shape onto a face of a component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.editFile(cmd, args[0], "decorate", func(list []diagram.Component, lib *shapes.Library) ([]diagram.Component, editor.Outcome, error) {
				sel, err := resolveID(list, on)
				if err != nil {
					return list, editor.Outcome{}, err
				}
				out, o := editor.Add2D(list, lib, args[1], face, sel)
				return out, o, nil
			})
			if err != nil {
				return err
			}
			printSuccess("Decorated %s with %s", o.ID, StyleHighlight.Render(args[1]))
			return nil
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "component to decorate (id or unique id prefix)")
	cmd.Flags().StringVar(&face, "face", "", "anchor to weld onto (default: the shape's own default)")
	return cmd
}

func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file> <id>",
		Short: "Remove a component and everything attached to it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.editFile(cmd, args[0], "remove", func(list []diagram.Component, _ *shapes.Library) ([]diagram.Component, editor.Outcome, error) {
				id, err := resolveID(list, args[1])
				if err != nil {
					return list, editor.Outcome{}, err
				}
				out, o := editor.Remove3D(list, id)
				return out, o, nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %d component(s)", len(o.Affected))
			return nil
		},
	}
}

func (c *CLI) undecorateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undecorate <file> <id> <index>",
		Short: "Remove one decoration from a component",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidIndex, "index must be an integer, got %q", args[2])
			}
			o, err := c.editFile(cmd, args[0], "undecorate", func(list []diagram.Component, _ *shapes.Library) ([]diagram.Component, editor.Outcome, error) {
				id, err := resolveID(list, args[1])
				if err != nil {
					return list, editor.Outcome{}, err
				}
				out, o := editor.Remove2D(list, id, index)
				return out, o, nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed decoration %d from %s", index, o.ID)
			return nil
		},
	}
}

func (c *CLI) cutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cut <file> <id>",
		Short: "Mark a component's subtree for moving",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.editFile(cmd, args[0], "cut", func(list []diagram.Component, _ *shapes.Library) ([]diagram.Component, editor.Outcome, error) {
				id, err := resolveID(list, args[1])
				if err != nil {
					return list, editor.Outcome{}, err
				}
				out, o := editor.Cut(list, id)
				return out, o, nil
			})
			if err != nil {
				return err
			}
			printSuccess("Cut %d component(s)", len(o.Affected))
			printNextStep("Move them", "isostack paste "+args[0]+" --on <id>")
			return nil
		},
	}
}

func (c *CLI) cancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <file> <id>",
		Short: "Clear the cut mark from a component's subtree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.editFile(cmd, args[0], "cancel", func(list []diagram.Component, _ *shapes.Library) ([]diagram.Component, editor.Outcome, error) {
				id, err := resolveID(list, args[1])
				if err != nil {
					return list, editor.Outcome{}, err
				}
				out, o := editor.CancelCut(list, id)
				return out, o, nil
			})
			if err != nil {
				return err
			}
			printSuccess("Cancelled cut on %d component(s)", len(o.Affected))
			return nil
		},
	}
}

func (c *CLI) pasteCommand() *cobra.Command {
	var on, at, anchor, cutRoot string
	cmd := &cobra.Command{
		Use:   "paste <file>",
		Short: "Move the cut subtree onto another component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.editFile(cmd, args[0], "paste", func(list []diagram.Component, _ *shapes.Library) ([]diagram.Component, editor.Outcome, error) {
				target, err := resolveID(list, on)
				if err != nil {
					return list, editor.Outcome{}, err
				}
				root, err := resolveID(list, cutRoot)
				if err != nil {
					return list, editor.Outcome{}, err
				}
				out, o := editor.Paste(list, root, target, at, anchor)
				return out, o, nil
			})
			if err != nil {
				return err
			}
			printSuccess("Pasted %d component(s)", len(o.Affected))
			return nil
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "component to paste onto (id or unique id prefix)")
	cmd.Flags().StringVar(&at, "at", editor.DefaultPosition, "face of the target to attach to")
	cmd.Flags().StringVar(&anchor, "anchor", "", "named anchor of the target; overrides --at")
	cmd.Flags().StringVar(&cutRoot, "cut", "", "root of the cut subtree (default: the current cut)")
	return cmd
}
