package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/openapi"
)

func (a *app) openapiCmd() *cobra.Command {
	var source, operationID string
	var list bool
	cmd := &cobra.Command{
		Use:   "openapi --source FILE|URL (--list | --operation ID [key=value...])",
		Short: "Clean key=value pairs against an OpenAPI request body",
		Long: `Builds a form from the request body schema of an OpenAPI 3 operation and
cleans the key=value arguments with it. Use --list to print the operations.

Example:
  formfields openapi --source api.json --operation createUser email=ada@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := []openapi.Option{
				openapi.WithLogger(a.logger),
				openapi.WithFormOptions(forms.WithLogger(a.logger)),
			}

			if list {
				doc, err := formfields.LoadDocument(ctx, source)
				if err != nil {
					return err
				}
				ops, err := openapi.Operations(ctx, doc, opts...)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, op := range ops {
					body := "-"
					if op.HasBody {
						body = green("body")
					}
					fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", op.ID, op.Method, op.Path, body, op.Summary)
				}
				return tw.Flush()
			}

			if operationID == "" {
				return fmt.Errorf("--operation is required unless --list is set")
			}
			form, err := formfields.OpenAPIForm(ctx, source, operationID, opts...)
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
	cmd.Flags().StringVar(&source, "source", "", "OpenAPI document path or URL")
	cmd.Flags().StringVar(&operationID, "operation", "", "operation id")
	cmd.Flags().BoolVar(&list, "list", false, "list operations instead of cleaning")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}
