package main

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/1broseidon/gridsnap/internal/layoutstore"
	"github.com/spf13/cobra"
)

func newLayoutsCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the remembered grid shape per monitor and profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := layoutstore.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			entries, err := layoutstore.Read(path)
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), "no layouts saved yet")
				return nil
			}
			if err != nil {
				return err
			}

			keys := make([]layoutstore.Key, 0, len(entries))
			for k := range entries {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool {
				return keys[i].String() < keys[j].String()
			})

			out := cmd.OutOrStdout()
			for _, k := range keys {
				e := entries[k]
				fmt.Fprintf(out, "%-16s %-12s %dx%d\n", k.Monitor, k.Profile, e.Rows, e.Columns)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "layouts file (default $XDG_CACHE_HOME/gridsnap/layouts.yaml)")
	return cmd
}
