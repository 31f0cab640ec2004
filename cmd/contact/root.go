package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio/backend/pkg/contactclient"
)

const defaultAPI = "http://localhost:8080"

type rootOptions struct {
	api     string
	token   string
	timeout time.Duration
}

func (o *rootOptions) client() (*contactclient.Client, error) {
	opts := []contactclient.Option{contactclient.WithTimeout(o.timeout)}
	if o.token != "" {
		opts = append(opts, contactclient.WithToken(o.token))
	}
	return contactclient.New(o.api, opts...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// errSilent marks a failure already reported to the user.
var errSilent = errors.New("")

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "contact",
		Short: "Send and manage portfolio contact messages",
		Long: `Send a message through the portfolio contact API, or manage the
stored inbox (list, delete) with an admin token.

The API base URL defaults to $CONTACT_API_URL, then ` + defaultAPI + `.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.api, "api", envOr("CONTACT_API_URL", defaultAPI), "contact API base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("CONTACT_API_TOKEN"), "admin bearer token")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-request timeout")

	root.AddCommand(
		newSubmitCmd(opts),
		newListCmd(opts),
		newDeleteCmd(opts),
		newHealthCmd(opts),
		newTokenCmd(),
	)

	// print errors ourselves so errSilent stays quiet
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln("Error:", err)
		c.PrintErrln(c.UsageString())
		return errSilent
	})
	return root
}
