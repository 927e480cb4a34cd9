package main

import (
	"github.com/danielledeleo/createpage/internal/config"
	"github.com/danielledeleo/createpage/internal/logger"
	"github.com/danielledeleo/createpage/internal/server"
	"github.com/danielledeleo/createpage/wiki"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pagectl",
		Short: "Administer the create page service",
		Long: `pagectl manages the page store and runtime settings used by the
create page service. It reads the same config.yaml as the server.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "config.yaml", "path to the config file")

	rootCmd.AddCommand(
		newMigrateCmd(opts),
		newPageCmd(opts),
		newSettingCmd(opts),
		newRouteCmd(opts),
		newNamespaceCmd(opts),
	)
	return rootCmd
}

// loadConfig reads the config file without writing defaults and sets up
// logging from it.
func (o *rootOptions) loadConfig() (*wiki.Config, error) {
	conf, err := config.Load(o.configFile, false)
	if err != nil {
		return nil, err
	}
	logger.InitLogger(logger.ParseLogFormat(conf.LogFormat), logger.ParseLogLevel(conf.LogLevel))
	return conf, nil
}

// openApp bootstraps the same App the server runs. The caller closes app.DB.
func (o *rootOptions) openApp() (*server.App, error) {
	conf, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return server.Bootstrap(conf)
}
