package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/registry"
	"github.com/shohag/airegistry/internal/render"
	"github.com/shohag/airegistry/internal/validation"
)

const confirmPrompt = "Are you sure? This action cannot be undone. This will permanently delete the endpoint"

func endpointCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoint",
		Aliases: []string{"endpoints", "ep"},
		Short:   "Manage registered endpoints",
	}

	cmd.AddCommand(
		endpointAddCmd(configPath),
		endpointListCmd(configPath),
		endpointShowCmd(configPath),
		endpointDeleteCmd(configPath),
		endpointSeedCmd(configPath),
	)
	return cmd
}

func endpointAddCmd(configPath *string) *cobra.Command {
	sub := models.NewSubmission()
	var testCases []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := registry.NewTestCaseDraft(validation.New())
			for i, raw := range testCases {
				in, err := parseTestCase(raw)
				if err != nil {
					return fmt.Errorf("--test-case %d: %w", i+1, err)
				}
				if _, err := draft.Add(in); err != nil {
					var verrs *validation.Errors
					if errors.As(err, &verrs) {
						fmt.Fprintf(cmd.ErrOrStderr(), "test case %d is invalid:\n", i+1)
						render.ValidationErrors(cmd.ErrOrStderr(), verrs)
					}
					return fmt.Errorf("invalid test case")
				}
			}
			sub.TestCases = draft.Inputs()

			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer app.close()

			ep, err := app.svc.Register(cmd.Context(), sub)
			if err != nil {
				var verrs *validation.Errors
				if errors.As(err, &verrs) {
					fmt.Fprintln(cmd.ErrOrStderr(), "endpoint is invalid:")
					render.ValidationErrors(cmd.ErrOrStderr(), verrs)
					return fmt.Errorf("endpoint not saved")
				}
				return err
			}

			if asJSON {
				return render.JSON(cmd.OutOrStdout(), ep)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Endpoint %s registered as %s\n", ep.EndpointID, ep.ID)
			for _, tc := range draft.Items() {
				fmt.Fprintf(cmd.OutOrStdout(), "  test case %s: %q => %q\n", tc.ID, tc.Input, tc.ExpectedOutput)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&sub.EndpointID, "endpoint-id", "", "logical endpoint name")
	f.StringVar(&sub.Method, "method", sub.Method, "HTTP method (GET, POST, PUT, DELETE)")
	f.StringVar(&sub.Description, "description", "", "what the endpoint does")
	f.StringVar(&sub.URL, "url", "", "endpoint URL")
	f.StringVar(&sub.PromptExample, "prompt-example", "", "example prompt")
	f.StringVar(&sub.ResponseExample, "response-example", "", "example response")
	f.BoolVar(&sub.IsJSONResponse, "json-response", sub.IsJSONResponse, "response example must be valid JSON")
	f.StringVar(&sub.Creator, "creator", "", "creator name")
	f.StringArrayVar(&testCases, "test-case", nil, `test case as "input=>expected output" (repeatable)`)
	f.BoolVar(&asJSON, "json", false, "print the stored record as JSON")
	return cmd
}

// parseTestCase splits "input=>expected output". Blank halves are left for
// the validator to report.
func parseTestCase(raw string) (models.TestCaseInput, error) {
	input, expected, ok := strings.Cut(raw, "=>")
	if !ok {
		return models.TestCaseInput{}, fmt.Errorf(`expected "input=>expected output", got %q`, raw)
	}
	return models.TestCaseInput{
		Input:          strings.TrimSpace(input),
		ExpectedOutput: strings.TrimSpace(expected),
	}, nil
}

func endpointListCmd(configPath *string) *cobra.Command {
	var asJSON, relative bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer app.close()

			if app.cfg.Storage.Seed {
				if err := app.seed(cmd.Context()); err != nil {
					return err
				}
			}

			eps, err := app.svc.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list endpoints: %w", err)
			}

			if asJSON {
				return render.JSON(cmd.OutOrStdout(), eps)
			}
			return render.Table(cmd.OutOrStdout(), eps, render.TableOptions{
				RelativeDates: relative,
				Now:           time.Now(),
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&relative, "relative", false, "show creation dates relative to now")
	return cmd
}

func endpointShowCmd(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer app.close()

			ep, err := app.svc.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load endpoint: %w", err)
			}
			if ep == nil {
				return fmt.Errorf("endpoint %q not found", args[0])
			}

			if asJSON {
				return render.JSON(cmd.OutOrStdout(), ep)
			}
			return render.Detail(cmd.OutOrStdout(), *ep)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func endpointDeleteCmd(configPath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an endpoint after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer app.close()

			confirm := registry.NewDeleteConfirmation(app.store)
			confirm.Stage(args[0])

			if !yes && !askConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), args[0]) {
				confirm.Cancel()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			id, err := confirm.Confirm(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to delete endpoint: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Endpoint %s deleted.\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func askConfirmation(in io.Reader, out io.Writer, id string) bool {
	fmt.Fprintf(out, "%s %s. [y/N]: ", confirmPrompt, id)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func endpointSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Store the sample endpoints when nothing has been saved yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer app.close()

			seeded, err := app.svc.EnsureSeeded(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to seed endpoints: %w", err)
			}
			if seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d sample endpoints.\n", len(registry.SeedEndpoints()))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Endpoints already stored, nothing to seed.")
			}
			return nil
		},
	}
}
