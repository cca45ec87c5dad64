package main

import (
	"fmt"
	"strings"

	"github.com/1broseidon/gridsnap/internal/ipc"
	"github.com/spf13/cobra"
)

// newControlCmds returns the argument-less commands that forward to the
// running daemon.
func newControlCmds(opts *rootOptions) []*cobra.Command {
	simple := []struct {
		use   string
		short string
		send  func(*ipc.Client) error
	}{
		{"open", "Open the grid picker", (*ipc.Client).Open},
		{"quick", "Open the picker; it closes after one placement", (*ipc.Client).Quick},
		{"maximize", "Toggle maximize of the focused window", (*ipc.Client).Maximize},
		{"close", "Close the grid picker", (*ipc.Client).Close},
		{"reload", "Reload the daemon config", (*ipc.Client).Reload},
		{"exit", "Stop the daemon", (*ipc.Client).Exit},
	}

	cmds := make([]*cobra.Command, 0, len(simple))
	for _, c := range simple {
		send := c.send
		cmds = append(cmds, &cobra.Command{
			Use:   c.use,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(opts.client())
			},
		})
	}
	return cmds
}

func newProfileCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <name>",
		Short: "Switch the layout profile of the open picker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.client().SetProfile(args[0])
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.client().GetStatus()
			if err != nil {
				return err
			}
			printStatus(cmd, st)
			return nil
		},
	}
}

func printStatus(cmd *cobra.Command, st *ipc.StatusData) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "state:          %s\n", st.State)
	if st.Session != "" {
		fmt.Fprintf(out, "session:        %s\n", st.Session)
	}
	fmt.Fprintf(out, "monitor:        %s\n", st.Monitor)
	fmt.Fprintf(out, "profile:        %s\n", st.Profile)
	fmt.Fprintf(out, "grid:           %dx%d\n", st.Rows, st.Columns)
	if st.ActiveWindow != 0 {
		fmt.Fprintf(out, "active_window:  0x%x\n", st.ActiveWindow)
	}
	fmt.Fprintf(out, "config:         %s\n", st.ConfigPath)
	fmt.Fprintf(out, "layouts:        %s\n", st.LayoutsPath)
	fmt.Fprintf(out, "uptime_seconds: %d\n", st.UptimeSeconds)
}

func newAutoStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "autostart on|off",
		Short:     "Start gridsnap when you log in",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			if err := opts.client().SetAutoStart(enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "autostart: %t\n", enabled)
			return nil
		},
	}
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "on":
		return true, nil
	case "n", "no", "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
