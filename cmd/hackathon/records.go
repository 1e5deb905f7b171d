package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vibecodeutah/hackathon-site/internal/storage"
)

// withStore opens the configured store for the duration of fn.
func withStore(fn func(cmd *cobra.Command, args []string, store storage.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg.Storage)
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(cmd, args, store)
	}
}

func newRegistrationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registrations",
		Aliases: []string{"regs"},
		Short:   "Inspect team registrations",
	}

	var opts storage.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List registrations, newest first",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store storage.Store) error {
			regs, err := store.ListRegistrations(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("list registrations: %w", err)
			}
			return printRegistrations(cmd.OutOrStdout(), regs)
		}),
	}
	addListFlags(list, &opts)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one registration",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store storage.Store) error {
			r, err := store.GetRegistration(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get registration %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:       %s\n", r.ID)
			fmt.Fprintf(out, "team:     %s\n", r.TeamName)
			fmt.Fprintf(out, "email:    %s\n", r.Email)
			fmt.Fprintf(out, "phone:    %s\n", r.Phone)
			fmt.Fprintf(out, "members:  %s\n", r.TeamMembers)
			fmt.Fprintf(out, "idea:     %s\n", r.ProjectIdea)
			fmt.Fprintf(out, "status:   %s\n", r.Status)
			fmt.Fprintf(out, "created:  %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		}),
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newInquiriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "Inspect donation and sponsorship inquiries",
	}

	var opts storage.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List inquiries, newest first",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store storage.Store) error {
			qs, err := store.ListInquiries(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("list inquiries: %w", err)
			}
			return printInquiries(cmd.OutOrStdout(), qs)
		}),
	}
	addListFlags(list, &opts)

	cmd.AddCommand(list)
	return cmd
}

func addListFlags(cmd *cobra.Command, opts *storage.ListOptions) {
	cmd.Flags().StringVar(&opts.Status, "status", "", "only show records with this status")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "maximum rows (0 for all)")
}

func printRegistrations(w io.Writer, regs []*storage.Registration) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTEAM\tEMAIL\tSTATUS\tCREATED")
	for _, r := range regs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.TeamName, r.Email, r.Status, humanize.Time(r.CreatedAt))
	}
	return tw.Flush()
}

func printInquiries(w io.Writer, qs []*storage.Inquiry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tTYPE\tAMOUNT\tSTATUS\tCREATED")
	for _, q := range qs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", q.ID, q.Name, q.Email, q.InquiryType, q.Amount, q.Status, humanize.Time(q.CreatedAt))
	}
	return tw.Flush()
}
