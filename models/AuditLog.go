package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records every admin back-office mutation with before/after
// snapshots of the touched resource.
type AuditLog struct {
	gorm.Model
	AdminUserID  uint           `json:"adminUserID" gorm:"index"`
	Action       string         `json:"action" gorm:"size:50;index"` // create, update, delete, toggle_admin
	ResourceType string         `json:"resourceType" gorm:"size:50;index"`
	ResourceID   uint           `json:"resourceID" gorm:"index"`
	Before       datatypes.JSON `json:"before"`
	After        datatypes.JSON `json:"after"`
	IPAddress    string         `json:"ipAddress" gorm:"size:64"`
}
