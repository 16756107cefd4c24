package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newAppsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apps, err := client.Apps(cmd.Context())
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(apps)
			}

			rows := make([][]string, 0, len(apps))
			for _, a := range apps {
				rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Name})
			}

			printTable(os.Stdout, []string{"ID", "NAME"}, rows)

			return nil
		},
	}
}
