package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies the social action that produced a notification.
type NotificationType string

const (
	NotificationLike               NotificationType = "like"
	NotificationComment            NotificationType = "comment"
	NotificationReply              NotificationType = "reply"
	NotificationMention            NotificationType = "mention"
	NotificationFollow             NotificationType = "follow"
	NotificationCollaboratorInvite NotificationType = "collaborator_invite"
)

// Notification is addressed to one user and created only as a side effect
// of social actions. It is mutated only to set ReadAt and is never deleted
// in normal flow. Payload is an opaque JSON blob interpreted by clients.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Payload   json.RawMessage  `json:"payload"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// IsRead returns true once the notification has been marked read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
