package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields/pkg/httputil"
)

func base36Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base36",
		Short: "Convert between integers and base 36",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "encode N",
		Short: "Encode a non-negative integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer %q", args[0])
			}
			out, err := httputil.IntToBase36(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}, &cobra.Command{
		Use:   "decode TEXT",
		Short: "Decode base 36 text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := httputil.Base36ToInt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	})
	return cmd
}

func etagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "etag",
		Short: "Quote or parse entity tags",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "quote VALUE",
		Short: "Quote a value for an ETag header",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), httputil.QuoteETag(args[0]))
		},
	}, &cobra.Command{
		Use:   "parse HEADER",
		Short: "Print the tags of an If-None-Match header, one per line",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, tag := range httputil.ParseETags(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
		},
	})
	return cmd
}

func dateCmd() *cobra.Command {
	format := func(name string, fn func(time.Time) string) *cobra.Command {
		return &cobra.Command{
			Use:   name + " [EPOCH]",
			Short: "Format a Unix time, or now, as a " + name + " date",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var t time.Time
				if len(args) == 1 {
					seconds, err := strconv.ParseFloat(args[0], 64)
					if err != nil {
						return fmt.Errorf("invalid epoch %q", args[0])
					}
					t = httputil.FromEpoch(seconds)
				}
				fmt.Fprintln(cmd.OutOrStdout(), fn(t))
				return nil
			},
		}
	}
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Format HTTP and cookie dates",
	}
	cmd.AddCommand(format("http", httputil.HTTPDate), format("cookie", httputil.CookieDate))
	return cmd
}

func ip6Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ip6",
		Short: "IPv6 address helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "normalize ADDR",
		Short: "Expand an IPv6 address to eight groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := httputil.IP6Normalize(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	})
	return cmd
}

func quoteCmd() *cobra.Command {
	var plus bool
	var safe string
	cmd := &cobra.Command{
		Use:   "quote [--plus] [--safe CHARS] TEXT",
		Short: "Percent-encode text for use in a URL",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if plus {
				fmt.Fprintln(cmd.OutOrStdout(), httputil.URLQuotePlus(args[0], safe))
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), httputil.URLQuote(args[0], safe))
		},
	}
	cmd.Flags().BoolVar(&plus, "plus", false, "encode spaces as +")
	cmd.Flags().StringVar(&safe, "safe", "/", "characters left unquoted")
	return cmd
}
