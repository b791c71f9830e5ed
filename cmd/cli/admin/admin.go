package admin

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/cyberpeers/cyberpeers-server/cmd/cli/client"
	"github.com/cyberpeers/cyberpeers-server/cmd/cli/output"
	"github.com/cyberpeers/cyberpeers-server/cmd/cli/root"
	"github.com/spf13/cobra"
)

func init() {
	root.GetRoot().AddCommand(listUsersCmd(), statsCmd(),
		setFieldCmd("set-role", "role", "Change another user's role"),
		setFieldCmd("set-status", "status", "Change another user's status"))
}

// listUsersCmd lists every profile (admin only).
func listUsersCmd() *cobra.Command {
	var opts client.Options

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List all users (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var users []map[string]interface{}
			if err := client.Do(http.MethodGet, "/users", opts.Email, nil, &users); err != nil {
				return err
			}
			if opts.JSON {
				return output.PrintJSON(users)
			}
			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u["_id"], u["email"], u["name"], u["role"], u["status"]})
			}
			output.RenderTable([]string{"ID", "Email", "Name", "Role", "Status"}, rows)
			return nil
		},
	}
	client.BindFlags(cmd, &opts)
	return cmd
}

func statsCmd() *cobra.Command {
	var opts client.Options

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show user counts and recent activity (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats struct {
				TotalUsers       int64 `json:"totalUsers"`
				ActiveUsers      int64 `json:"activeUsers"`
				SuspendedUsers   int64 `json:"suspendedUsers"`
				Activities       int64 `json:"activities"`
				RecentActivities []struct {
					UserEmail  string `json:"userEmail"`
					AdminEmail string `json:"adminEmail"`
					Action     string `json:"action"`
					Timestamp  int    `json:"timestamp"`
				} `json:"recentActivities"`
			}
			if err := client.Do(http.MethodGet, "/admin/stats", opts.Email, nil, &stats); err != nil {
				return err
			}
			if opts.JSON {
				return output.PrintJSON(stats)
			}
			output.RenderTable(
				[]string{"Total", "Active", "Suspended", "Admin Activities"},
				[][]interface{}{{stats.TotalUsers, stats.ActiveUsers, stats.SuspendedUsers, stats.Activities}},
			)
			rows := make([][]interface{}, 0, len(stats.RecentActivities))
			for _, a := range stats.RecentActivities {
				actor := a.UserEmail
				if a.AdminEmail != "" {
					actor = a.AdminEmail
				}
				rows = append(rows, []interface{}{actor, a.Action, a.Timestamp})
			}
			output.RenderTable([]string{"Actor", "Action", "Days Ago"}, rows)
			return nil
		},
	}
	client.BindFlags(cmd, &opts)
	return cmd
}

// setFieldCmd builds set-role / set-status: PATCH /user/<field>/<id>.
func setFieldCmd(use, field, short string) *cobra.Command {
	var opts client.Options

	cmd := &cobra.Command{
		Use:   use + " <user-id> <" + field + ">",
		Short: short + " (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Message string `json:"message"`
				Result  struct {
					MatchedCount int64 `json:"matchedCount"`
				} `json:"result"`
			}
			path := "/user/" + field + "/" + url.PathEscape(args[0])
			if err := client.Do(http.MethodPatch, path, opts.Email, map[string]string{field: args[1]}, &out); err != nil {
				return err
			}
			if opts.JSON {
				return output.PrintJSON(out)
			}
			fmt.Println(out.Message)
			if out.Result.MatchedCount == 0 {
				fmt.Println("Note: no user matched (unknown id, your own account, or a suspended user).")
			}
			return nil
		},
	}
	client.BindFlags(cmd, &opts)
	return cmd
}
