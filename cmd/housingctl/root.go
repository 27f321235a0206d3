package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the state shared by subcommands.
type cli struct {
	configFile string
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "housingctl",
		Short:         "Operate the campus housing database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine; the environment may already be set.
			_ = godotenv.Load()
			v, err := loadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.v = v
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./housingctl.yaml if present)")

	root.AddCommand(newMigrateCmd(c))
	root.AddCommand(newSeedCmd(c))
	root.AddCommand(newTokenCmd(c))
	return root
}
