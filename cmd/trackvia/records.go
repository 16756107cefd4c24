package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	trackvia "github.com/trackvia/trackvia-go"
)

func newRecordsCmd() *cobra.Command {
	var flagStart, flagMax int

	var flagFind string

	cmd := &cobra.Command{
		Use:   "records <view-id>",
		Short: "List a view's records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID, err := parseID(args[0], "view-id")
			if err != nil {
				return err
			}

			var rs *trackvia.RecordSet
			if flagFind != "" {
				rs, err = client.FindRecords(cmd.Context(), viewID, flagFind, flagStart, flagMax)
			} else {
				rs, err = client.Records(cmd.Context(), viewID, flagStart, flagMax)
			}

			if err != nil {
				return err
			}

			return printRecordSet(rs)
		},
	}

	cmd.Flags().IntVar(&flagStart, "start", 0, "zero-based record offset")
	cmd.Flags().IntVar(&flagMax, "max", 50, "maximum records to return")
	cmd.Flags().StringVar(&flagFind, "find", "", "full-text search instead of a plain listing")

	return cmd
}

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Operate on a single record",
	}

	cmd.AddCommand(newRecordGetCmd())
	cmd.AddCommand(newRecordCreateCmd())
	cmd.AddCommand(newRecordUpdateCmd())
	cmd.AddCommand(newRecordRmCmd())

	return cmd
}

func newRecordGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <view-id> <record-id>",
		Short: "Fetch a record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID, recordID, err := parseViewRecord(args)
			if err != nil {
				return err
			}

			rs, err := client.Record(cmd.Context(), viewID, recordID)
			if err != nil {
				return err
			}

			if rs == nil {
				return fmt.Errorf("record %d not found in view %d", recordID, viewID)
			}

			return printRecordSet(rs)
		},
	}
}

func newRecordCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <view-id> <field>=<value>...",
		Short: "Create a record from field=value pairs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID, err := parseID(args[0], "view-id")
			if err != nil {
				return err
			}

			fields, err := parseFieldArgs(args[1:])
			if err != nil {
				return err
			}

			rs, err := client.CreateRecord(cmd.Context(), viewID, fields)
			if err != nil {
				return err
			}

			return printRecordSet(rs)
		},
	}
}

func newRecordUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <view-id> <record-id> <field>=<value>...",
		Short: "Update a record's fields",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID, recordID, err := parseViewRecord(args[:2])
			if err != nil {
				return err
			}

			fields, err := parseFieldArgs(args[2:])
			if err != nil {
				return err
			}

			rs, err := client.UpdateRecord(cmd.Context(), viewID, recordID, fields)
			if err != nil {
				return err
			}

			return printRecordSet(rs)
		},
	}
}

func newRecordRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <view-id> <record-id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID, recordID, err := parseViewRecord(args)
			if err != nil {
				return err
			}

			return client.DeleteRecord(cmd.Context(), viewID, recordID)
		},
	}
}

// parseID parses a numeric CLI identifier argument.
func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}

	return id, nil
}

// parseViewRecord parses the common <view-id> <record-id> argument pair.
func parseViewRecord(args []string) (int64, int64, error) {
	viewID, err := parseID(args[0], "view-id")
	if err != nil {
		return 0, 0, err
	}

	recordID, err := parseID(args[1], "record-id")
	if err != nil {
		return 0, 0, err
	}

	return viewID, recordID, nil
}

// parseFieldArgs turns field=value arguments into a record payload.
// Values stay strings; the service coerces them per column type.
func parseFieldArgs(args []string) (trackvia.Record, error) {
	fields := make(trackvia.Record, len(args))

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field argument %q, expected field=value", arg)
		}

		fields[name] = value
	}

	return fields, nil
}

// printRecordSet renders a record set as JSON or an aligned table with
// one column per structure field.
func printRecordSet(rs *trackvia.RecordSet) error {
	if flagJSON {
		return printJSON(rs)
	}

	headers := []string{"id"}
	for _, f := range rs.Structure {
		headers = append(headers, f.Name)
	}

	rows := make([][]string, 0, len(rs.Data))

	for _, rec := range rs.Data {
		row := []string{strconv.FormatInt(rec.ID(), 10)}
		for _, f := range rs.Structure {
			row = append(row, cellString(rec[f.Name]))
		}

		rows = append(rows, row)
	}

	printTable(os.Stdout, headers, rows)

	return nil
}
