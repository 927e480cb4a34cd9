package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/spf13/cobra"
)

func newSettingCmd(opts *rootOptions) *cobra.Command {
	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "Read and change runtime settings",
		Long: `Runtime settings live in the database and are read by the running
server on every request, e.g.

  pagectl setting set use_rich_editor true`,
	}

	settingCmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.openApp()
				if err != nil {
					return err
				}
				defer app.DB.Close()

				value, err := wiki.GetSetting(cmd.Context(), app.DB.DB, args[0])
				if errors.Is(err, wiki.ErrGenericNotFound) {
					return fmt.Errorf("setting %q is not set", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change a setting",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, value := args[0], args[1]
				switch key {
				case wiki.SettingUseRichEditor:
					rich, err := strconv.ParseBool(value)
					if err != nil {
						return fmt.Errorf("%s must be true or false", key)
					}
					value = strconv.FormatBool(rich)
				case wiki.SettingSchemaVersion, wiki.SettingCookieSecret:
					return fmt.Errorf("%s is managed by the service", key)
				}

				app, err := opts.openApp()
				if err != nil {
					return err
				}
				defer app.DB.Close()

				if err := wiki.UpdateSetting(app.DB.DB, key, value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
				return nil
			},
		},
	)

	return settingCmd
}
