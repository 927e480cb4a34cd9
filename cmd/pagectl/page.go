package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/spf13/cobra"
)

func newPageCmd(opts *rootOptions) *cobra.Command {
	pageCmd := &cobra.Command{
		Use:   "page",
		Short: "Inspect and modify stored pages",
	}

	var namespace string
	pageCmd.PersistentFlags().StringVarP(&namespace, "namespace", "n", "", "namespace used when the title has no prefix")

	pageCmd.AddCommand(
		&cobra.Command{
			Use:   "create <title>",
			Short: "Record a page as existing",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.openApp()
				if err != nil {
					return err
				}
				defer app.DB.Close()

				title, err := app.Creation.Resolve(args[0], namespace)
				if err != nil {
					return err
				}
				if err := app.Pages.CreatePage(cmd.Context(), title); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", title.PrefixedText())
				return nil
			},
		},
		&cobra.Command{
			Use:   "exists <title>",
			Short: "Report whether a page is stored",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.openApp()
				if err != nil {
					return err
				}
				defer app.DB.Close()

				title, err := app.Creation.Resolve(args[0], namespace)
				if err != nil {
					return err
				}
				exists, err := app.Pages.PageExists(cmd.Context(), title)
				if err != nil {
					return err
				}
				state := "missing"
				if exists {
					state = "exists"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", title.PrefixedText(), state)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <title>",
			Short: "Remove a page from the store",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.openApp()
				if err != nil {
					return err
				}
				defer app.DB.Close()

				title, err := app.Creation.Resolve(args[0], namespace)
				if err != nil {
					return err
				}
				err = app.Pages.DeletePage(cmd.Context(), title)
				if errors.Is(err, wiki.ErrGenericNotFound) {
					return fmt.Errorf("%s is not stored", title.PrefixedText())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", title.PrefixedText())
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored pages",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := opts.openApp()
				if err != nil {
					return err
				}
				defer app.DB.Close()

				pages, err := app.Pages.ListPages(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAMESPACE\tTITLE\tCREATED")
				for _, p := range pages {
					ns := app.Namespaces.Name(p.Namespace)
					if ns == "" {
						ns = "(main)"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, ns, p.DBKey, p.Created.Format(time.DateTime))
				}
				return w.Flush()
			},
		},
	)

	return pageCmd
}
