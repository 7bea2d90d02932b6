package clientcmd

import (
	"encoding/json"
	"net/url"

	"github.com/spf13/cobra"
)

// NewEventCmd returns the "event" command group.
func NewEventCmd() *cobra.Command {
	eventCmd := &cobra.Command{Use: "event", Short: "Event operations"}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event (payable)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := fieldsFromFlag(cmd)
			if err != nil {
				return err
			}
			deposit, _ := cmd.Flags().GetUint64("deposit")
			raw, err := clientFromFlags(cmd).post("/v1/events/create", map[string]any{
				"deposit": deposit,
				"fields":  fields,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}
	createCmd.Flags().String("fields", "{}", "event fields as JSON")

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an event (payable, owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := fieldsFromFlag(cmd)
			if err != nil {
				return err
			}
			deposit, _ := cmd.Flags().GetUint64("deposit")
			raw, err := clientFromFlags(cmd).post("/v1/events/update", map[string]any{
				"id":      args[0],
				"deposit": deposit,
				"fields":  fields,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}
	updateCmd.Flags().String("fields", "{}", "event fields as JSON")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an event (owner only, deposit refunded)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deposit, _ := cmd.Flags().GetUint64("deposit")
			raw, err := clientFromFlags(cmd).post("/v1/events/remove", map[string]any{
				"id":      args[0],
				"deposit": deposit,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an event by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := clientFromFlags(cmd).get("/v1/events/get", url.Values{"id": {args[0]}})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			account, _ := cmd.Flags().GetString("account")
			c := clientFromFlags(cmd)
			var (
				raw json.RawMessage
				err error
			)
			if account != "" {
				raw, err = c.get("/v1/events/by-account", url.Values{"account": {account}})
			} else {
				raw, err = c.get("/v1/events", url.Values{"filter": {filter}})
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}
	listCmd.Flags().String("filter", "", "CEL filter expression")
	listCmd.Flags().String("account", "", "list only events owned by account")

	latestCmd := &cobra.Command{
		Use:   "latest <account>",
		Short: "Get the account's most recently created event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := clientFromFlags(cmd).get("/v1/events/latest", url.Values{"account": {args[0]}})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}

	eventCmd.AddCommand(createCmd, updateCmd, removeCmd, getCmd, listCmd, latestCmd)
	return eventCmd
}

func fieldsFromFlag(cmd *cobra.Command) (json.RawMessage, error) {
	s, _ := cmd.Flags().GetString("fields")
	var fields json.RawMessage
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
