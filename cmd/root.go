package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gamedevtech/tao/logger"
)

var (
	verbose    int
	quiet      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "glbindgen",
	Short: "OpenGL C# binding generator",
	Long:  "glbindgen writes a C# OpenGL binding class (delegates, imports, lazily resolved entry points and wrappers) from parsed function and constant descriptors.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := verbose
		if quiet {
			level = logger.VerbosityQuiet
		}
		logger.Initialize(level)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Verbose output (repeat for more)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./glbind.toml if present)")
}

func Execute() error {
	return rootCmd.Execute()
}
