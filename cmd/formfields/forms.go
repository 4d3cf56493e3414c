package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfields"
	"github.com/goliatone/go-formfields/pkg/formdef"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/prompt"
	"github.com/goliatone/go-formfields/pkg/server"
)

func (a *app) cleanCmd() *cobra.Command {
	var defPath, formName string
	cmd := &cobra.Command{
		Use:   "clean --def FILE --form NAME [key=value...]",
		Short: "Clean key=value pairs against a form definition",
		Long: `Loads the form definition, binds the key=value arguments to the named form
and prints the cleaned data as JSON. Repeat a key to submit several values.

Example:
  formfields clean --def forms.yaml --form signup email=ada@example.com age=36`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(cmd.Context(), defPath, formName)
			if err != nil {
				return err
			}
			values, err := parseAssignments(args)
			if err != nil {
				return err
			}
			return report(cmd, form.Bind(values, nil))
		},
	}
	cmd.Flags().StringVar(&defPath, "def", "", "form definition file or URL")
	cmd.Flags().StringVar(&formName, "form", "", "form name")
	_ = cmd.MarkFlagRequired("def")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func (a *app) promptCmd() *cobra.Command {
	var defPath, formName string
	cmd := &cobra.Command{
		Use:   "prompt --def FILE --form NAME",
		Short: "Fill in a form interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(cmd.Context(), defPath, formName)
			if err != nil {
				return err
			}
			data, err := prompt.Collect(cmd.Context(), form, prompt.NewSurveyDriver())
			if err != nil {
				var formErr *forms.FormError
				if errors.As(err, &formErr) {
					printErrors(cmd.ErrOrStderr(), formErr.Mapping)
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().StringVar(&defPath, "def", "", "form definition file or URL")
	cmd.Flags().StringVar(&formName, "form", "", "form name")
	_ = cmd.MarkFlagRequired("def")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var defPath, addr string
	var metrics bool
	cmd := &cobra.Command{
		Use:   "serve --def FILE [--addr :8080]",
		Short: "Serve form descriptions and clean submissions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			promReg := prometheus.NewRegistry()
			buildOpts := []formdef.BuildOption{formdef.WithFormOptions(forms.WithLogger(a.logger))}
			handlerOpts := []server.Option{server.WithLogger(a.logger)}
			if metrics {
				promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				buildOpts = append(buildOpts, formdef.WithFormOptions(forms.WithMetrics(forms.NewMetrics(promReg))))
				handlerOpts = append(handlerOpts, server.WithGatherer(promReg))
			}

			reg, err := formfields.LoadForms(cmd.Context(), defPath, buildOpts)
			if err != nil {
				return err
			}
			a.logger.Info("forms loaded", zap.String("definition", defPath), zap.Strings("forms", reg.List()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.ListenAndServe(ctx, addr, server.New(reg, handlerOpts...).Router(), a.logger)
		},
	}
	cmd.Flags().StringVar(&defPath, "def", "", "form definition file or URL")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose prometheus metrics on /metrics")
	_ = cmd.MarkFlagRequired("def")
	return cmd
}

func (a *app) loadForm(ctx context.Context, defPath, name string) (*forms.Form, error) {
	reg, err := formfields.LoadForms(ctx, defPath, []formdef.BuildOption{
		formdef.WithFormOptions(forms.WithLogger(a.logger)),
	})
	if err != nil {
		return nil, err
	}
	form, err := reg.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(reg.List(), ", "))
	}
	return form, nil
}

// parseAssignments turns key=value arguments into form data.
func parseAssignments(args []string) (url.Values, error) {
	values := url.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		values.Add(key, value)
	}
	return values, nil
}

// report prints the cleaned data, or the errors and a failure.
func report(cmd *cobra.Command, bound *forms.Bound) error {
	if err := bound.FullClean(cmd.Context()); err != nil {
		var formErr *forms.FormError
		if errors.As(err, &formErr) {
			printErrors(cmd.ErrOrStderr(), formErr.Mapping)
		}
		return err
	}
	return writeJSON(cmd.OutOrStdout(), bound.CleanedData())
}

func printErrors(w io.Writer, mapping forms.ErrorMapping) {
	names := make([]string, 0, len(mapping.Fields))
	for name := range mapping.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, red(name))
		fmt.Fprintln(w, mapping.Fields[name].Text())
	}
	if len(mapping.Form) > 0 {
		fmt.Fprintln(w, red(forms.FormErrorKey))
		fmt.Fprintln(w, mapping.Form.Text())
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
