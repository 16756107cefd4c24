package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

func newFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Operate on record file fields",
	}

	cmd.AddCommand(newFileGetCmd())
	cmd.AddCommand(newFilePutCmd())
	cmd.AddCommand(newFileRmCmd())

	return cmd
}

func newFileGetCmd() *cobra.Command {
	var flagOutput string

	cmd := &cobra.Command{
		Use:   "get <view-id> <record-id> <field>",
		Short: "Download a record's file field",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID, recordID, err := parseViewRecord(args[:2])
			if err != nil {
				return err
			}

			out := os.Stdout
			if flagOutput != "" {
				f, createErr := os.Create(flagOutput)
				if createErr != nil {
					return fmt.Errorf("creating output file: %w", createErr)
				}
				defer f.Close()

				out = f
			}

			n, err := client.GetFile(cmd.Context(), viewID, recordID, args[2], out)
			if err != nil {
				return err
			}

			if flagOutput != "" && !flagQuiet {
				fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", n, flagOutput)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func newFilePutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <view-id> <record-id> <field> <path>",
		Short: "Upload a local file into a record's file field",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID, recordID, err := parseViewRecord(args[:2])
			if err != nil {
				return err
			}

			f, err := os.Open(args[3])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer f.Close()

			// Normalize the name to NFC: macOS filesystems hand out NFD
			// names, which render as distinct files server-side.
			fileName := norm.NFC.String(filepath.Base(args[3]))

			_, err = client.AddFile(cmd.Context(), viewID, recordID, args[2], fileName, f)

			return err
		},
	}
}

func newFileRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <view-id> <record-id> <field>",
		Short: "Delete a record's file field content",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewID, recordID, err := parseViewRecord(args[:2])
			if err != nil {
				return err
			}

			return client.DeleteFile(cmd.Context(), viewID, recordID, args[2])
		},
	}
}
