package model

// BreakRule is one tier of a client's break table: shifts whose raw
// duration reaches MinHours have BreakMinutes deducted. The applicable tier
// for a shift is the greatest MinHours not exceeding the raw duration.
// The unique index keeps a replace race from leaving two tiers on the same
// threshold.
type BreakRule struct {
	ID           int32   `gorm:"primaryKey;column:id"`
	ClientID     int32   `gorm:"column:client_id;not null;uniqueIndex:idx_client_min_hours"`
	MinHours     float64 `gorm:"column:min_hours;type:decimal(5,2);not null;uniqueIndex:idx_client_min_hours"`
	BreakMinutes int32   `gorm:"column:break_minutes;not null"`
}

func (BreakRule) TableName() string {
	return "break_rules"
}
