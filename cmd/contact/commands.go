package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/folio/backend/pkg/auth"
	"github.com/folio/backend/pkg/contactclient"
	"github.com/folio/backend/pkg/contactform"
)

func newSubmitCmd(root *rootOptions) *cobra.Command {
	var (
		fields contactform.Fields
		notice bool
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a contact message",
		Example: `  contact submit --name "Jo" --email jo@example.com \
    --subject "Hello there" --message "I liked your portfolio."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}

			var presenter contactclient.Presenter = contactclient.NewInlinePresenter(cmd.ErrOrStderr())
			if notice {
				presenter = contactclient.NewNoticePresenter(cmd.ErrOrStderr())
			}
			form := contactclient.NewForm(client, presenter)
			form.Set(contactform.FieldName, fields.Name)
			form.Set(contactform.FieldEmail, fields.Email)
			form.Set(contactform.FieldSubject, fields.Subject)
			form.Set(contactform.FieldMessage, fields.Message)

			out, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			if out.Kind != contactclient.Succeeded {
				return errSilent
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&fields.Name, "name", "", "your name")
	f.StringVar(&fields.Email, "email", "", "your email address")
	f.StringVar(&fields.Subject, "subject", "", "message subject")
	f.StringVar(&fields.Message, "message", "", "message body")
	f.BoolVar(&notice, "notice", false, "report only the first problem instead of every field")
	return cmd
}

func newListCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored contact messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			contacts, err := client.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(contacts)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTIMESTAMP\tNAME\tEMAIL\tSUBJECT\tSTATUS")
			for _, c := range contacts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Timestamp, c.Name, c.Email, c.Subject, c.Status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw records as JSON")
	return cmd
}

func newDeleteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored contact message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			if err := client.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}
}

func newHealthCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the contact API is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			h, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", h.Message, h.Timestamp)
			if !h.OK {
				return errSilent
			}
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token from SESSION_SECRET",
		Long: `Print a bearer token accepted by the inbox routes when the server runs
with AUTH_REQUIRED=true. The server and this command must share SESSION_SECRET.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := os.Getenv("SESSION_SECRET")
			if secret == "" {
				return fmt.Errorf("SESSION_SECRET is not set")
			}
			fmt.Fprintln(cmd.OutOrStdout(), auth.CreateToken(auth.AdminSubject, auth.SecretBytes(secret)))
			return nil
		},
	}
}
