package model

type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationWarning NotificationKind = "warning"
	NotificationError   NotificationKind = "error"
)

// swagger:model Notification
type Notification struct {
	BaseModel
	UserID  uint             `gorm:"index;not null" json:"userId"`
	Title   string           `gorm:"size:200;not null" json:"title"`
	Message string           `gorm:"type:text;not null" json:"message"`
	Kind    NotificationKind `gorm:"size:20;default:'info'" json:"kind"`
	Read    bool             `gorm:"default:false" json:"read"`
	Link    string           `gorm:"size:255" json:"link,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
