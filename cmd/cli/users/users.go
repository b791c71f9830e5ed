package users

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cyberpeers/cyberpeers-server/cmd/cli/client"
	"github.com/cyberpeers/cyberpeers-server/cmd/cli/output"
	"github.com/cyberpeers/cyberpeers-server/cmd/cli/root"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	profile := profileCmd()
	profile.AddCommand(updateProfileCmd())
	root.GetRoot().AddCommand(loginCmd(), profile, activitiesCmd())
}

// ==========================
// Login (POST /user)
// ==========================
func loginCmd() *cobra.Command {
	var opts client.Options
	var name string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Register on first use, record a login afterwards",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Email == "" {
				return fmt.Errorf("--email is required")
			}
			payload := map[string]string{"email": opts.Email, "name": name}
			var out map[string]interface{}
			if err := client.Do(http.MethodPost, "/user", "", payload, &out); err != nil {
				return err
			}
			if opts.JSON {
				return output.PrintJSON(out)
			}
			fmt.Println(out["message"])
			return nil
		},
	}
	client.BindFlags(cmd, &opts)
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	return cmd
}

// ==========================
// Profile (GET /user)
// ==========================
func profileCmd() *cobra.Command {
	var opts client.Options

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile map[string]interface{}
			if err := client.Do(http.MethodGet, "/user", opts.Email, nil, &profile); err != nil {
				return err
			}
			if opts.JSON {
				return output.PrintJSON(profile)
			}
			output.RenderTable(
				[]string{"Email", "Name", "Role", "Status", "Days Active"},
				[][]interface{}{{profile["email"], profile["name"], profile["role"], profile["status"], profile["daysActive"]}},
			)
			return nil
		},
	}
	client.BindFlags(cmd, &opts)
	return cmd
}

// ==========================
// Update Profile (PATCH /user/profile)
// ==========================
func updateProfileCmd() *cobra.Command {
	var opts client.Options
	var sets []string

	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Merge fields into your profile",
		Example: "  cyberpeers profile update --set name=Ada --set bio=engineer",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseSets(sets)
			if err != nil {
				return err
			}
			var out map[string]interface{}
			if err := client.Do(http.MethodPatch, "/user/profile", opts.Email, fields, &out); err != nil {
				return err
			}
			if opts.JSON {
				return output.PrintJSON(out)
			}
			fmt.Println(out["message"])
			return nil
		},
	}
	client.BindFlags(cmd, &opts)
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field to set as key=value (repeatable)")
	return cmd
}

func parseSets(sets []string) (map[string]string, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("at least one --set key=value is required")
	}
	fields := make(map[string]string, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", s)
		}
		fields[k] = v
	}
	return fields, nil
}

// ==========================
// Activities (GET /user/activities)
// ==========================
func activitiesCmd() *cobra.Command {
	var opts client.Options

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List your activity, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []map[string]interface{}
			if err := client.Do(http.MethodGet, "/user/activities", opts.Email, nil, &entries); err != nil {
				return err
			}
			if opts.JSON {
				return output.PrintJSON(entries)
			}
			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []interface{}{e["action"], e["timestamp"]})
			}
			output.RenderTable([]string{"Action", "Days Ago"}, rows)
			return nil
		},
	}
	client.BindFlags(cmd, &opts)
	return cmd
}
