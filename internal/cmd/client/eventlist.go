package clientcmd

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

// NewEventListCmd returns the "list" command group for event lists.
func NewEventListCmd() *cobra.Command {
	listCmd := &cobra.Command{Use: "list", Short: "Event list operations"}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event list (payable)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := fieldsFromFlag(cmd)
			if err != nil {
				return err
			}
			deposit, _ := cmd.Flags().GetUint64("deposit")
			raw, err := clientFromFlags(cmd).post("/v1/event-lists/create", map[string]any{
				"deposit": deposit,
				"fields":  fields,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}
	createCmd.Flags().String("fields", "{}", "list fields as JSON")

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an event list (payable, owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := fieldsFromFlag(cmd)
			if err != nil {
				return err
			}
			deposit, _ := cmd.Flags().GetUint64("deposit")
			raw, err := clientFromFlags(cmd).post("/v1/event-lists/update", map[string]any{
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
	updateCmd.Flags().String("fields", "{}", "list fields as JSON")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an event list and its entries (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deposit, _ := cmd.Flags().GetUint64("deposit")
			raw, err := clientFromFlags(cmd).post("/v1/event-lists/remove", map[string]any{
				"id":      args[0],
				"deposit": deposit,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}

	addEventCmd := &cobra.Command{
		Use:   "add-event <list-id> <event-id>",
		Short: "Add an event to a list at --position (payable, owner only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deposit, _ := cmd.Flags().GetUint64("deposit")
			position, _ := cmd.Flags().GetInt("position")
			raw, err := clientFromFlags(cmd).post("/v1/event-lists/add-event", map[string]any{
				"list_id":  args[0],
				"event_id": args[1],
				"position": position,
				"deposit":  deposit,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}
	addEventCmd.Flags().Int("position", 0, "target position in the list")

	removeEventCmd := &cobra.Command{
		Use:   "remove-event <list-id> <event-id>",
		Short: "Remove an event from a list (owner only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deposit, _ := cmd.Flags().GetUint64("deposit")
			raw, err := clientFromFlags(cmd).post("/v1/event-lists/remove-event", map[string]any{
				"list_id":  args[0],
				"event_id": args[1],
				"deposit":  deposit,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an event list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			include, _ := cmd.Flags().GetBool("include-events")
			raw, err := clientFromFlags(cmd).get("/v1/event-lists/get", url.Values{
				"id":             {args[0]},
				"include_events": {strconv.FormatBool(include)},
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}
	getCmd.Flags().Bool("include-events", false, "include the ordered membership")

	entriesCmd := &cobra.Command{
		Use:   "entries <list-id>",
		Short: "List a list's membership in position order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			q := url.Values{"list_id": {args[0]}}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			raw, err := clientFromFlags(cmd).get("/v1/event-lists/entries", q)
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}
	entriesCmd.Flags().Int("limit", 0, "maximum entries to return (0 = all)")

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "List all event lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, _ := cmd.Flags().GetString("account")
			c := clientFromFlags(cmd)
			if account != "" {
				raw, err := c.get("/v1/event-lists/by-account", url.Values{"account": {account}})
				if err != nil {
					return err
				}
				return printJSON(cmd, raw)
			}
			raw, err := c.get("/v1/event-lists", nil)
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}
	allCmd.Flags().String("account", "", "list only lists owned by account")

	listCmd.AddCommand(createCmd, updateCmd, removeCmd, addEventCmd, removeEventCmd, getCmd, entriesCmd, allCmd)
	return listCmd
}
