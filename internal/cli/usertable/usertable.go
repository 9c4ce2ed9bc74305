// Package usertable implements the usertable command: put, get and update
// items of the users table.
package usertable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/cli"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/users"
)

// Users is the user store driven by the commands.
type Users interface {
	Put(ctx context.Context, userID, firstName, lastName string) error
	Get(ctx context.Context, userID string) (*users.User, error)
	UpdateAge(ctx context.Context, userID string, age int) (map[string]any, error)
}

var _ Users = (*users.Service)(nil)

// NewCommand returns the usertable root command operating on table.
func NewCommand(svc Users, table string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usertable",
		Short: fmt.Sprintf("Perform DynamoDB operations on the '%s' table.", table),
		Args:  cobra.NoArgs,
		RunE:  cli.RequireCommand,
	}
	cmd.AddCommand(
		newPutCommand(svc),
		newGetCommand(svc),
		newUpdateCommand(svc),
	)
	return cmd
}

func newPutCommand(svc Users) *cobra.Command {
	var userID, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Write an item to the table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if err := svc.Put(cmd.Context(), userID, firstName, lastName); err != nil {
				return report(out, "Error putting item", err)
			}
			fmt.Fprintf(out, "Successfully added user '%s %s' with ID '%s'.\n", firstName, lastName, userID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&userID, "userId", "", "The user ID (partition key).")
	f.StringVar(&firstName, "firstName", "", "User's first name.")
	f.StringVar(&lastName, "lastName", "", "User's last name.")
	markRequired(cmd, "userId", "firstName", "lastName")
	return cmd
}

func newGetCommand(svc Users) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read an item from the table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			user, err := svc.Get(cmd.Context(), userID)
			if err != nil {
				return report(out, "Error getting item", err)
			}
			if user == nil {
				fmt.Fprintf(out, "No item found with userId: %s\n", userID)
				return nil
			}

			item, err := json.MarshalIndent(user, "", "  ")
			if err != nil {
				return report(out, "Error getting item", err)
			}
			fmt.Fprintln(out, "Successfully retrieved item:")
			fmt.Fprintln(out, string(item))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "userId", "", "The user ID of the item to retrieve.")
	markRequired(cmd, "userId")
	return cmd
}

func newUpdateCommand(svc Users) *cobra.Command {
	var (
		userID string
		age    int
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an item in the table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			updated, err := svc.UpdateAge(cmd.Context(), userID, age)
			if err != nil {
				return report(out, "Error updating item", err)
			}

			attrs, err := json.Marshal(updated)
			if err != nil {
				return report(out, "Error updating item", err)
			}
			fmt.Fprintf(out, "Successfully updated userId '%s' with age %d.\n", userID, age)
			fmt.Fprintf(out, "Updated attributes: %s\n", attrs)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&userID, "userId", "", "The user ID of the item to update.")
	f.IntVar(&age, "age", 0, "The age to add or update for the user.")
	markRequired(cmd, "userId", "age")
	return cmd
}

// report prints the service's own error message after prefix.
func report(w io.Writer, prefix string, err error) error {
	fmt.Fprintf(w, "%s: %s\n", prefix, errors.Message(err))
	return cli.Reported(err)
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
