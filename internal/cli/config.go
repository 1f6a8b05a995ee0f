package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/settings"
	"github.com/matzehuels/isostack/pkg/store"
)

// configKeys lists the settings that "config set" understands.
var configKeys = []string{"width", "height", "output", "clip", "library", "store", "store_dsn"}

// configCommand creates the settings management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change persisted settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := c.loadSettings()
			if err != nil {
				return err
			}
			printKeyValue("File", path)
			printKeyValue("Canvas", fmt.Sprintf("%gx%g", s.Canvas.Width, s.Canvas.Height))
			printKeyValue("Output", s.Output)
			printKeyValue("Clip", strconv.FormatBool(s.Clip))
			printKeyValue("Library", orDefault(s.Library, "built-in"))
			printKeyValue("Store", orDefault(s.Store, store.BackendFile))
			if s.StoreDSN != "" {
				printKeyValue("Store DSN", s.StoreDSN)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one setting",
		Long:      "Change one setting. Keys: width, height, output, clip, library, store, store_dsn.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: configKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := c.loadSettings()
			if err != nil {
				return err
			}
			if err := setSetting(&s, args[0], args[1]); err != nil {
				return err
			}
			if err := settings.Save(path, s); err != nil {
				return err
			}
			printSuccess("Set %s = %s", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := c.loadSettings()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, path)
			return nil
		},
	})

	return cmd
}

// setSetting applies one key=value change to s.
func setSetting(s *settings.Settings, key, value string) error {
	switch key {
	case "width", "height":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a positive number, got %q", key, value)
		}
		if key == "width" {
			s.Canvas.Width = v
		} else {
			s.Canvas.Height = v
		}
	case "output":
		s.Output = value
	case "clip":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "clip must be true or false, got %q", value)
		}
		s.Clip = v
	case "library":
		if value == "" {
			s.Library = ""
			return nil
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", value)
		}
		s.Library = abs
	case "store":
		if value != "" && !store.IsBackend(value) {
			return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want one of %v)", value, store.Backends)
		}
		s.Store = value
	case "store_dsn":
		s.StoreDSN = value
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown setting %q (want one of %v)", key, configKeys)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
