package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func useServer(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Setenv("CYBERPEERS_API_URL", srv.URL)
	t.Setenv("CYBERPEERS_TOKEN", "test-token")
}

func TestProfile_TableOutput(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" || r.URL.Query().Get("email") != "ada@example.com" {
			t.Errorf("unexpected request: %s", r.URL)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"email": "ada@example.com", "name": "Ada", "role": "user", "status": "active", "daysActive": 4,
		})
	})

	cmd := profileCmd()
	cmd.SetArgs([]string{"--email", "ada@example.com"})
	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Errorf("profile: %v", err)
		}
	})

	if !strings.Contains(out, "Ada") || !strings.Contains(out, "active") {
		t.Fatalf("expected profile in output, got: %s", out)
	}
}

func TestActivities_JSONOutput(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/activities" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"userEmail": "ada@example.com", "action": "Ada Logged in", "timestamp": 0},
		})
	})

	cmd := activitiesCmd()
	cmd.SetArgs([]string{"--email", "ada@example.com", "--json"})
	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Errorf("activities: %v", err)
		}
	})

	if !strings.Contains(out, `"action": "Ada Logged in"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestUpdateProfile_SendsFields(t *testing.T) {
	var got map[string]string
	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/user/profile" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"message": "Profile updated successfully"})
	})

	cmd := updateProfileCmd()
	cmd.SetArgs([]string{"--email", "ada@example.com", "--set", "bio=engineer", "--set", "city=London"})
	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Errorf("update: %v", err)
		}
	})

	if got["bio"] != "engineer" || got["city"] != "London" {
		t.Errorf("unexpected payload: %v", got)
	}
	if !strings.Contains(out, "Profile updated successfully") {
		t.Errorf("output: %s", out)
	}
}

func TestLogin_ForbiddenSurfacesMessage(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "forbidden access"})
	})

	cmd := loginCmd()
	cmd.SetArgs([]string{"--email", "ada@example.com"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "forbidden access") {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestParseSets(t *testing.T) {
	if _, err := parseSets(nil); err == nil {
		t.Error("expected error for no fields")
	}
	if _, err := parseSets([]string{"novalue"}); err == nil {
		t.Error("expected error for missing '='")
	}
	fields, err := parseSets([]string{"a=1", "b=x=y"})
	if err != nil {
		t.Fatalf("parseSets: %v", err)
	}
	if fields["a"] != "1" || fields["b"] != "x=y" {
		t.Errorf("unexpected fields: %v", fields)
	}
}
