package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeCheckClockSubmitted  NotificationType = "checkclock_submitted"
	TypeCheckClockApproved   NotificationType = "checkclock_approved"
	TypeCheckClockRejected   NotificationType = "checkclock_rejected"
	TypeCheckClockAutoClosed NotificationType = "checkclock_auto_closed"
	TypeScheduleUpdated      NotificationType = "schedule_updated"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeCheckClockSubmitted,
		TypeCheckClockApproved,
		TypeCheckClockRejected,
		TypeCheckClockAutoClosed,
		TypeScheduleUpdated,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// NotificationPreference represents user preference for a notification type
type NotificationPreference struct {
	ID               string
	UserID           string
	NotificationType NotificationType
	PushEnabled      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
