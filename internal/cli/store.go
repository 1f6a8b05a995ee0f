package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/store"
)

// saveCommand copies a diagram file into the configured store.
func (c *CLI) saveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <file> <key>",
		Short: "Save a diagram file to the store under key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := args[0], args[1]
			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return errors.New(errors.ErrCodeNotFound, "diagram file %s does not exist", path)
				}
				return errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
			}
			list, err := diagram.Deserialize(data)
			if err != nil {
				return err
			}

			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Save(cmd.Context(), key, string(data)); err != nil {
				return err
			}
			printSuccess("Saved %s (%d components)", key, len(list))
			return nil
		},
	}
}

// loadCommand writes a stored diagram to a file.
func (c *CLI) loadCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "load <key> <file>",
		Short: "Load a diagram from the store into a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, path := args[0], args[1]
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}

			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			text, err := st.Load(cmd.Context(), key)
			if err != nil {
				return err
			}
			list, err := diagram.Deserialize([]byte(text))
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "stored diagram %s", key)
			}
			if err := writeDiagram(path, list); err != nil {
				return err
			}
			printSuccess("Loaded %s (%d components)", key, len(list))
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// storeCommand groups listing and deleting stored diagrams.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the diagram store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored diagram keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			keys, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				printInfo("No stored diagrams")
				printNextStep("Save one", "isostack save diagram.json my-diagram")
				return nil
			}
			for _, k := range keys {
				fmt.Fprintln(stdout, k)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a stored diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				if store.IsNotFound(err) {
					printWarning("%s was not stored", args[0])
					return nil
				}
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "backends",
		Short: "List the supported store backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, b := range store.Backends {
				fmt.Fprintln(stdout, b)
			}
			return nil
		},
	})

	return cmd
}
