package model

import "time"

// Manager reviews timesheets and runs payroll. Role "admin" additionally
// unlocks the tenant-provisioning endpoints.
type Manager struct {
	ID        int32     `gorm:"primaryKey;column:id"`
	ClientID  int32     `gorm:"column:client_id;not null;index"`
	Name      string    `gorm:"column:name;type:varchar(120);not null"`
	PinHash   string    `gorm:"column:pin_hash;type:varchar(100);not null"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:manager"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Manager) TableName() string {
	return "managers"
}

const (
	RoleManager = "manager"
	RoleAdmin   = "admin"
)
