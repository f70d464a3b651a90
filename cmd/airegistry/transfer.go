package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/render"
	"github.com/shohag/airegistry/internal/transfer"
	"github.com/shohag/airegistry/internal/validation"
)

func importCmd(configPath *string) *cobra.Command {
	var records bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Register every endpoint of a YAML file, or none if any is invalid",
		Long: "Register every endpoint of a YAML file, or none if any is invalid.\n\n" +
			"With --records the file is read as the output of export: records keep their\n" +
			"ids and creation dates, and ids that are already stored are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if records {
				return restoreRecords(cmd, *configPath, args[0])
			}

			subs, err := readSubmissions(args[0])
			if err != nil {
				return err
			}

			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer app.close()

			eps, err := app.svc.Import(cmd.Context(), subs)
			if err != nil {
				if reportBatch(cmd.ErrOrStderr(), err) {
					return fmt.Errorf("nothing imported")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d endpoint(s).\n", len(eps))
			return nil
		},
	}
	cmd.Flags().BoolVar(&records, "records", false, "read the file as exported records")
	return cmd
}

func restoreRecords(cmd *cobra.Command, configPath, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	eps, err := transfer.ReadEndpoints(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	app, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer app.close()

	added, err := app.svc.Restore(cmd.Context(), eps)
	if err != nil {
		if reportBatch(cmd.ErrOrStderr(), err) {
			return fmt.Errorf("nothing imported")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %d endpoint(s), skipped %d already stored.\n", added, len(eps)-added)
	return nil
}

func exportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Write all endpoints as YAML (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer app.close()

			eps, err := app.svc.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list endpoints: %w", err)
			}

			if len(args) == 0 {
				return transfer.WriteEndpoints(cmd.OutOrStdout(), eps)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			if err := transfer.WriteEndpoints(f, eps); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d endpoint(s) to %s\n", len(eps), args[0])
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.yaml>",
		Short: "Check a YAML import file without saving anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := readSubmissions(args[0])
			if err != nil {
				return err
			}

			if _, err := validation.New().ValidateBatch(subs); err != nil {
				if reportBatch(cmd.ErrOrStderr(), err) {
					return fmt.Errorf("validation failed")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d endpoint(s) valid.\n", len(subs))
			return nil
		},
	}
}

func readSubmissions(path string) ([]models.Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	subs, err := transfer.ReadSubmissions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return subs, nil
}

// reportBatch prints per-entry field errors and reports whether err was a
// batch validation error.
func reportBatch(w io.Writer, err error) bool {
	var batch *validation.BatchError
	if !errors.As(err, &batch) {
		return false
	}
	for _, e := range batch.Errors {
		fmt.Fprintf(w, "entry %d:\n", e.Index+1)
		render.ValidationErrors(w, e.Err)
	}
	return true
}
