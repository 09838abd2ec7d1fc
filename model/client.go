package model

import "time"

// Client is one subscribing business. Clients live in the shared admin
// schema; everything else is stored per-tenant, in the schema named by
// Subdomain.
type Client struct {
	ID        int32     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;type:varchar(120);not null"`
	Subdomain string    `gorm:"column:subdomain;type:varchar(63);uniqueIndex;not null"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Client) TableName() string {
	return "clients"
}

const (
	ClientStatusActive    = "active"
	ClientStatusSuspended = "suspended"
)
