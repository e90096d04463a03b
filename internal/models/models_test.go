package models

import (
	"encoding/json"
	"testing"
)

func TestValidVideoID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"a-b_c-d_e-f", true},
		{"dQw4w9WgXc", false},
		{"dQw4w9WgXcQQ", false},
		{"dQw4w9WgX!Q", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidVideoID(tt.id); got != tt.want {
			t.Errorf("ValidVideoID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestErrorResponseHasEmptyVideoList(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse("Failed to fetch videos"))
	if err != nil {
		t.Fatalf("Failed to marshal ErrorResponse: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	videos, ok := result["videos"].([]interface{})
	if !ok {
		t.Fatalf("Expected videos to be a JSON array, got %v", result["videos"])
	}
	if len(videos) != 0 {
		t.Errorf("Expected empty videos, got %d", len(videos))
	}
	if result["success"] != false {
		t.Errorf("Expected success false, got %v", result["success"])
	}
}

func TestRoleLabel(t *testing.T) {
	if RoleDebate.Label() != "Debate Participant" {
		t.Errorf("unexpected label %q", RoleDebate.Label())
	}
	if Role("unknown").Valid() {
		t.Error("unknown role must not be valid")
	}
	if Role("unknown").Label() != "unknown" {
		t.Error("unknown role label should fall back to the raw value")
	}
}
