package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// TestNotificationPayloadMarshalsInline verifies the payload is emitted as
// embedded JSON rather than a base64 string.
func TestNotificationPayloadMarshalsInline(t *testing.T) {
	n := Notification{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Type:    NotificationMention,
		Payload: json.RawMessage(`{"comment_id":"abc"}`),
	}

	out, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal notification: %v", err)
	}
	if !strings.Contains(string(out), `"payload":{"comment_id":"abc"}`) {
		t.Errorf("payload not embedded inline: %s", out)
	}
}

// TestActivityMetadataMarshalsInline does the same for activity entries.
func TestActivityMetadataMarshalsInline(t *testing.T) {
	a := ActivityLog{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Type:     ActivityCommentAdded,
		Metadata: json.RawMessage(`{"length":12}`),
	}

	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal activity: %v", err)
	}
	if !strings.Contains(string(out), `"metadata":{"length":12}`) {
		t.Errorf("metadata not embedded inline: %s", out)
	}
}
