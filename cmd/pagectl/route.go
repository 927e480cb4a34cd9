package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// routeOutput is the JSON printed by "pagectl route".
type routeOutput struct {
	Kind      string `json:"kind"`
	Title     string `json:"title,omitempty"`
	Namespace *int   `json:"namespace,omitempty"`
	TargetURL string `json:"target_url,omitempty"`
	EditURL   string `json:"edit_url,omitempty"`
	RetryURL  string `json:"retry_url,omitempty"`
}

func newRouteCmd(opts *rootOptions) *cobra.Command {
	var namespace string

	routeCmd := &cobra.Command{
		Use:   "route <title>",
		Short: "Show where a create page submission would be sent",
		Long: `route runs the same routing as a form submission to Special:CreatePage
and prints the decision as JSON. Nothing is written to the store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.DB.Close()

			decision, err := app.Creation.Route(cmd.Context(), args[0], namespace)
			if err != nil {
				return err
			}

			out := routeOutput{
				Kind:      decision.Kind.String(),
				TargetURL: decision.TargetURL,
				EditURL:   decision.EditURL,
				RetryURL:  decision.RetryURL,
			}
			if decision.Title != nil {
				ns := int(decision.Title.Namespace)
				out.Title = decision.Title.PrefixedText()
				out.Namespace = &ns
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(out)
		},
	}
	routeCmd.Flags().StringVarP(&namespace, "namespace", "n", "", "namespace used when the title has no prefix")

	return routeCmd
}
