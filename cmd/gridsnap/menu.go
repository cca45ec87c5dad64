package main

import (
	"os/exec"
	"strings"

	"github.com/1broseidon/gridsnap/internal/palette"
	"github.com/spf13/cobra"
)

func newMenuCmd(opts *rootOptions) *cobra.Command {
	var launcher string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show the gridsnap menu in rofi, fuzzel, wofi or dmenu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := palette.NewBackend(launcher)
			if err != nil {
				return err
			}
			res, err := loadConfig(opts)
			if err != nil {
				return err
			}
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}

			tray := &palette.Tray{
				Backend:    backend,
				Controller: opts.client(),
				Profiles:   res.Config.Profiles,
				AutoStart:  res.Config.AutoStart,
				ConfigPath: path,
				About:      strings.ReplaceAll(strings.TrimSpace(versionText()), "\n", ", "),
				OpenFile:   openFile,
			}
			return tray.Run()
		},
	}

	cmd.Flags().StringVar(&launcher, "launcher", "auto", "menu launcher: auto, rofi, fuzzel, wofi or dmenu")
	return cmd
}

func openFile(path string) error {
	return exec.Command("xdg-open", path).Start()
}
