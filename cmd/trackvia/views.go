package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	trackvia "github.com/trackvia/trackvia-go"
)

func newViewsCmd() *cobra.Command {
	var flagName string

	cmd := &cobra.Command{
		Use:   "views",
		Short: "List views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				views []trackvia.View
				err   error
			)

			if flagName != "" {
				views, err = client.ViewsByName(cmd.Context(), flagName)
			} else {
				views, err = client.Views(cmd.Context())
			}

			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(views)
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{
					strconv.FormatInt(v.ID, 10),
					v.Name,
					v.ApplicationName,
				})
			}

			printTable(os.Stdout, []string{"ID", "NAME", "APPLICATION"}, rows)

			return nil
		},
	}

	cmd.Flags().StringVar(&flagName, "name", "", "filter views by exact name")

	return cmd
}
