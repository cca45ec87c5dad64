// Command gridsnap runs the grid picker daemon and controls it over its
// socket.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/1broseidon/gridsnap/internal/config"
	"github.com/1broseidon/gridsnap/internal/daemon"
	"github.com/1broseidon/gridsnap/internal/ipc"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	verbose    bool
	configPath string
	socketPath string
}

func (o *rootOptions) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.DefaultConfigPath()
}

func (o *rootOptions) client() *ipc.Client {
	if o.socketPath != "" {
		return ipc.NewClientWithSocket(o.socketPath)
	}
	return ipc.NewClient()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "gridsnap",
		Short: "Snap windows to a grid picked with the mouse",
		Long: `gridsnap shows a small grid of tiles when its hotkey is pressed. Hovering
previews the screen zone under the pointer, clicking or dragging places the
focused window there. Without a subcommand gridsnap runs the daemon.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, opts)
		},
	}

	root.SetVersionTemplate(versionText())
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gridsnap/config.yaml)")
	root.PersistentFlags().StringVar(&opts.socketPath, "socket", "", "daemon socket (default $XDG_RUNTIME_DIR/gridsnap.sock)")

	root.AddCommand(newDaemonCmd(opts))
	root.AddCommand(newControlCmds(opts)...)
	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newAutoStartCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newLayoutsCmd())
	root.AddCommand(newMenuCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the picker daemon (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, opts)
		},
	}
}

func runDaemon(cmd *cobra.Command, opts *rootOptions) error {
	return daemon.Run(cmd.Context(), daemon.Options{
		ConfigPath: opts.configPath,
		Logger:     loggerFromContext(cmd.Context()),
		Verbose:    opts.verbose,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
		},
	}
}

func versionText() string {
	return fmt.Sprintf("gridsnap %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}
