package model

// AuditLogEntry records one moderation action. Appended as a side effect of
// every quiz create/update/delete and every submission status change;
// append-only.
// swagger:model AuditLogEntry
type AuditLogEntry struct {
	UUIDBase
	AdminID       string `gorm:"index;size:32;not null" json:"adminId"`
	AdminUsername string `gorm:"size:100;not null" json:"adminUsername"`
	Action        string `gorm:"type:text;not null" json:"action"`
}

func (AuditLogEntry) TableName() string {
	return "audit_log_entries"
}
