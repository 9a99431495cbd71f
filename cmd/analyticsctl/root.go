package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/angelmondragon/pulse-analytics/api/responses"
	"github.com/angelmondragon/pulse-analytics/internal/analytics"
	"github.com/angelmondragon/pulse-analytics/internal/dashboard"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type serviceFactory func(ctx context.Context) (analytics.Service, error)

// reportedError marks a failure whose body was already written to stderr.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// dashboardOutput mirrors the HTTP dashboard body.
type dashboardOutput struct {
	Payload *analytics.Payload `json:"payload" yaml:"payload"`
	View    dashboard.View     `json:"view" yaml:"view"`
}

// run executes the CLI and returns the process exit code. Errors that did not
// already print a failure body are written to stderr.
func run(ctx context.Context, newService serviceFactory, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(newService)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

type queryFlags struct {
	company string
	from    string
	to      string
	source  string
	output  string
	timeout time.Duration
}

func (f queryFlags) query() analytics.Query {
	return analytics.Query{Company: f.company, From: f.from, To: f.to}
}

func newRootCmd(newService serviceFactory) *cobra.Command {
	flags := &queryFlags{}

	root := &cobra.Command{
		Use:           "analyticsctl",
		Short:         "Run the sales analytics pipeline from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.company, "company", "", "company to report on")
	root.PersistentFlags().StringVar(&flags.from, "from", "", "start of the reporting period")
	root.PersistentFlags().StringVar(&flags.to, "to", "", "end of the reporting period")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", outputJSON, "output format: json or yaml (prompt prints text; failures use this format)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", time.Minute, "overall command timeout")

	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Fetch the analytics payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, newService, *flags, false)
		},
	}
	queryCmd.Flags().StringVar(&flags.source, "source", "", "data source: sample or model")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Fetch the payload together with its dashboard view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, newService, *flags, true)
		},
	}
	dashboardCmd.Flags().StringVar(&flags.source, "source", "", "data source: sample or model")

	promptCmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the instruction that would be sent to the model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(flags.output); err != nil {
				return err
			}
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			prompt, err := svc.Prompt(flags.query())
			if err != nil {
				return writeFailure(cmd.ErrOrStderr(), flags.output, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return err
		},
	}

	root.AddCommand(queryCmd, dashboardCmd, promptCmd)
	return root
}

func runQuery(cmd *cobra.Command, newService serviceFactory, flags queryFlags, withView bool) error {
	if err := checkOutput(flags.output); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	svc, err := newService(ctx)
	if err != nil {
		return err
	}

	payload, err := svc.Query(ctx, analytics.Request{Query: flags.query(), Source: flags.source})
	if err != nil {
		return writeFailure(cmd.ErrOrStderr(), flags.output, err)
	}

	if !withView {
		return render(cmd.OutOrStdout(), flags.output, payload)
	}
	return render(cmd.OutOrStdout(), flags.output, dashboardOutput{
		Payload: payload,
		View:    dashboard.Build(*payload),
	})
}

// writeFailure prints the same failure body the HTTP API returns and hands
// the error back so the process exits non-zero.
func writeFailure(w io.Writer, format string, err error) error {
	_, body := responses.ErrorBody(err)
	if renderErr := render(w, format, body); renderErr != nil {
		return renderErr
	}
	return reportedError{err: err}
}

func checkOutput(format string) error {
	switch strings.ToLower(format) {
	case outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

// render writes v as indented JSON or YAML. Types carry matching json and
// yaml tags so both formats use the same field names and order.
func render(w io.Writer, format string, v any) error {
	if strings.ToLower(format) != outputYAML {
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
