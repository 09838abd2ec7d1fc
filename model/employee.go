package model

import "time"

// Employee clocks in and out with a 4-digit keypad PIN. The PIN is stored
// hashed; uniqueness within the client is checked before hashing.
type Employee struct {
	ID           int32     `gorm:"primaryKey;column:id"`
	ClientID     int32     `gorm:"column:client_id;not null;index"`
	FirstName    string    `gorm:"column:first_name;type:varchar(80);not null"`
	Surname      string    `gorm:"column:surname;type:varchar(80);not null"`
	PinHash      string    `gorm:"column:pin_hash;type:varchar(100);not null"`
	WeekdayRate  float64   `gorm:"column:weekday_rate;type:decimal(10,2);not null;default:0"`
	SaturdayRate float64   `gorm:"column:saturday_rate;type:decimal(10,2);not null;default:0"`
	SundayRate   float64   `gorm:"column:sunday_rate;type:decimal(10,2);not null;default:0"`
	PayType      string    `gorm:"column:pay_type;type:varchar(20);not null;default:hourly"`
	Status       string    `gorm:"column:status;type:varchar(20);not null;default:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

const (
	PayTypeHourly  = "hourly"
	PayTypeDayRate = "day_rate"

	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)
