package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skriva/doclabel/pkg/fields"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Manage the field definitions used for labeling",
}

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, _, err := loadFields(cmd)
		if err != nil {
			return err
		}
		if set.Len() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No fields configured")
			return nil
		}
		for _, def := range set.List() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", def.Key, def.Type)
		}
		return nil
	},
}

var fieldsAddCmd = &cobra.Command{
	Use:   "add [key] [type]",
	Short: "Add a field definition",
	Long:  "Add a field definition. Valid types: " + strings.Join(fields.Types, ", ") + ".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, path, err := loadFields(cmd)
		if err != nil {
			return err
		}
		if err := set.Add(args[0], args[1]); err != nil {
			return err
		}
		return set.Save(path)
	},
}

var fieldsRenameCmd = &cobra.Command{
	Use:   "rename [key] [new-key]",
	Short: "Rename a field, keeping its type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, path, err := loadFields(cmd)
		if err != nil {
			return err
		}
		def, ok := set.Get(args[0])
		if !ok {
			return fmt.Errorf("field %q not found", args[0])
		}
		if err := set.Edit(args[0], args[1], def.Type); err != nil {
			return err
		}
		return set.Save(path)
	},
}

var fieldsRetypeCmd = &cobra.Command{
	Use:   "retype [key] [type]",
	Short: "Change a field's type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, path, err := loadFields(cmd)
		if err != nil {
			return err
		}
		if err := set.Edit(args[0], args[0], args[1]); err != nil {
			return err
		}
		return set.Save(path)
	},
}

var fieldsRemoveCmd = &cobra.Command{
	Use:   "remove [key]",
	Short: "Remove a field definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, path, err := loadFields(cmd)
		if err != nil {
			return err
		}
		if err := set.Remove(args[0]); err != nil {
			return err
		}
		return set.Save(path)
	},
}

func init() {
	RootCmd.AddCommand(fieldsCmd)
	fieldsCmd.AddCommand(fieldsListCmd, fieldsAddCmd, fieldsRenameCmd, fieldsRetypeCmd, fieldsRemoveCmd)
}

// loadFields reads the field definitions named by the config, returning the
// set and the path to save it back to.
func loadFields(cmd *cobra.Command) (*fields.Set, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	set, err := fields.Load(cfg.FieldsFile)
	if err != nil {
		return nil, "", err
	}
	return set, cfg.FieldsFile, nil
}
