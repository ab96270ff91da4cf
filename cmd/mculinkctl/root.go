package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	identity string
	execPath string

	cfg  clientConfig
	link *clientLink
)

var rootCmd = &cobra.Command{
	Use:   "mculinkctl",
	Short: "Drive a device across an in-memory or pipe-backed mculink connection",
	Long: `mculinkctl is a manual-testing client for the framed command protocol.

With no --exec flag it builds an in-process device and drives it across an
in-memory link, for exercising the protocol and its demo handlers without
any external process. With --exec it instead launches the given mculinkd
binary and talks to it over its stdin/stdout pipes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = defaultConfigPath()
		}
		loaded, err := loadClientConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
		if identity != "" {
			cfg.Identity = identity
		}
		if execPath != "" {
			cfg.Exec = execPath
		}

		if cfg.Exec != "" {
			link, err = newExecLink(cfg.Exec)
		} else {
			link, err = newMemoryLink(cfg.Identity)
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if link != nil {
			link.close()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mculinkctl:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.mculink/mculinkctl.toml)")
	rootCmd.PersistentFlags().StringVar(&identity, "identity", "", "identity string for the in-memory demo device")
	rootCmd.PersistentFlags().StringVar(&execPath, "exec", "", "path to a mculinkd binary to drive over stdin/stdout instead of the in-memory demo")
}

const replyTimeout = 2 * time.Second
