package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":                                      "/",
		"/user":                                 "/user",
		"/user/role/65f0c3e2a1b2c3d4e5f60718":   "/user/role/{id}",
		"/user/status/65F0C3E2A1B2C3D4E5F60718": "/user/status/{id}",
		"/things/42/parts":                      "/things/{id}/parts",
	}
	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIncActivitiesLogged(t *testing.T) {
	before := testutil.ToFloat64(ActivitiesLogged.WithLabelValues("error"))
	IncActivitiesLogged(false)
	after := testutil.ToFloat64(ActivitiesLogged.WithLabelValues("error"))
	if after-before != 1 {
		t.Errorf("error outcome: got delta %v, want 1", after-before)
	}
}
