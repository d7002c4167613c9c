package instance

import "testing"

func TestIDPrefersExplicitValue(t *testing.T) {
	t.Setenv("TANKSTORE_INSTANCE_ID", "api-1")
	t.Setenv("DYNO", "web.3")
	if got := ID(); got != "api-1" {
		t.Fatalf("expected api-1, got %q", got)
	}
}

func TestIDFallsBackToDyno(t *testing.T) {
	t.Setenv("TANKSTORE_INSTANCE_ID", "")
	t.Setenv("DYNO", "worker.1")
	if got := ID(); got != "worker.1" {
		t.Fatalf("expected worker.1, got %q", got)
	}
}

func TestIDNeverEmpty(t *testing.T) {
	t.Setenv("TANKSTORE_INSTANCE_ID", "")
	t.Setenv("DYNO", "")
	if ID() == "" {
		t.Fatal("expected a non-empty id")
	}
}
