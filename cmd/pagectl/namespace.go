package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/spf13/cobra"
)

func newNamespaceCmd(opts *rootOptions) *cobra.Command {
	namespaceCmd := &cobra.Command{
		Use:   "namespace",
		Short: "Inspect the configured namespaces",
	}

	namespaceCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List namespaces with their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}
			namespaces, err := wiki.NewNamespaceRegistryFromConfig(conf)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tALIASES\tKIND")
			for _, ns := range namespaces.All() {
				name := ns.Name
				if name == "" {
					name = "(main)"
				}
				aliases := "-"
				if len(ns.Aliases) > 0 {
					aliases = strings.Join(ns.Aliases, ", ")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", ns.ID, name, aliases, namespaceKind(ns))
			}
			return w.Flush()
		},
	})

	return namespaceCmd
}

func namespaceKind(ns wiki.Namespace) string {
	switch {
	case ns.IsVirtual():
		return "virtual"
	case ns.IsTalk():
		return "talk"
	default:
		return "content"
	}
}
