package notification

import (
	"strings"
	"testing"
)

func TestRenderGigCreated(t *testing.T) {
	subject, body, err := Render("gig.created", map[string]any{
		"Name":     "Sam",
		"Platform": "DoorDash",
		"Date":     "2026-08-30",
		"Pay":      "42.50",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if subject != "New gig logged: DoorDash" {
		t.Errorf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "Hi Sam") || !strings.Contains(body, "$42.50") {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestRenderUnknownEventType(t *testing.T) {
	if _, _, err := Render("no.such.event", nil); err == nil {
		t.Error("expected error for unregistered event type")
	}
}
