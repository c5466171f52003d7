package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"notary-ally/internal/app"
	"notary-ally/internal/export"
)

// opener builds the App a command runs against.
type opener func(ctx context.Context) (*app.App, error)

// Record kinds accepted as the first argument of export, list and reset.
const (
	kindAppointments = "appointments"
	kindMileage      = "mileage"
	kindJournal      = "journal"
)

var kinds = []string{kindAppointments, kindMileage, kindJournal}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "notaryctl",
		Short:        "Manage notary appointments, mileage and journal records",
		SilenceUsage: true,
	}

	root.AddCommand(
		newExportCmd(open),
		newListCmd(open),
		newResetCmd(open),
		newCountyCmd(open),
		newDistanceCmd(open),
	)
	return root
}

// withApp opens the App, runs fn and closes the App.
func withApp(cmd *cobra.Command, open opener, fn func(a *app.App) error) error {
	a, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}

func kindArgs() cobra.PositionalArgs {
	return cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)
}

func newExportCmd(open opener) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:       "export {appointments|mileage|journal}",
		Short:     "Write a collection to its CSV file",
		Long:      "Write appointments.csv, mileage_log.csv or journal_entries.csv into the output directory.",
		ValidArgs: kinds,
		Args:      kindArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.App) error {
				var doc export.Document
				var err error
				switch args[0] {
				case kindAppointments:
					doc, err = a.Appointments.Export()
				case kindMileage:
					doc, err = a.Mileage.Export()
				case kindJournal:
					doc, err = a.Journal.Export()
				}
				if err != nil {
					return err
				}

				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				path := filepath.Join(outDir, doc.Filename)
				if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory to write the CSV file to")
	return cmd
}

func newListCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:       "list {appointments|mileage|journal}",
		Short:     "Print a collection as JSON, newest first",
		ValidArgs: kinds,
		Args:      kindArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.App) error {
				var v any
				switch args[0] {
				case kindAppointments:
					v = a.Appointments.List()
				case kindMileage:
					v = a.Mileage.List()
				case kindJournal:
					v = a.Journal.List()
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			})
		},
	}
}

func newResetCmd(open opener) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:       "reset {appointments|mileage|journal}",
		Short:     "Delete every record in a collection",
		ValidArgs: kinds,
		Args:      kindArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", args[0])
			}
			return withApp(cmd, open, func(a *app.App) error {
				ctx := cmd.Context()
				var err error
				switch args[0] {
				case kindAppointments:
					err = a.Book.Appointments.Reset(ctx)
				case kindMileage:
					err = a.Book.Mileage.Reset(ctx)
				case kindJournal:
					err = a.Book.Journal.Reset(ctx)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func newCountyCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "county [--] LATITUDE LONGITUDE",
		Short: "Look up the county containing a coordinate pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[0])
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[1])
			}
			return withApp(cmd, open, func(a *app.App) error {
				info := a.Location.Find(cmd.Context(), lat, lon)
				if info.Error != "" {
					return fmt.Errorf("%s", info.Error)
				}
				fmt.Fprintln(cmd.OutOrStdout(), info.County)
				return nil
			})
		},
	}
}

func newDistanceCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "distance START END",
		Short: "Look up the driving distance in miles between two places",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.App) error {
				miles, err := a.Lookup.ResolveDistance(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), miles.StringFixed(1))
				return nil
			})
		},
	}
}
