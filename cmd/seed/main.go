package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/payroll"
	"shiftpay.net.au/shiftpay/security"
	"shiftpay.net.au/shiftpay/timeutil"
	"shiftpay.net.au/shiftpay/utils"
)

// Seeds a demo tenant with a fortnight of timesheets. Intended for local
// development against a fresh database.
func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	dsn := os.Getenv("DSN")
	if dsn == "" {
		log.Fatal("DSN is required")
	}

	dm, err := core.New(dsn, 5)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	if err := dm.EnsureAdminSchema(ctx); err != nil {
		log.Fatal(err)
	}

	client, err := dm.Provision(ctx, core.ProvisionInput{
		Name:        "Demo Cafe",
		Subdomain:   "demo",
		ManagerName: "Alex Demo",
		ManagerPin:  "0000",
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("provisioned tenant %s (id %d)\n", client.Subdomain, client.ID)

	if err := dm.Exec(ctx, client.Subdomain, func(db *gorm.DB) error {
		return seedTenant(db, client.ID)
	}); err != nil {
		log.Fatal(err)
	}
	fmt.Println("seed complete")
}

func seedTenant(db *gorm.DB, clientID int32) error {
	type seedEmployee struct {
		first, surname, pin string
		weekday, sat, sun   float64
	}
	seeds := []seedEmployee{
		{"Grace", "Tran", "1111", 25, 30, 35},
		{"Marcus", "Webb", "2222", 27.5, 32, 37.5},
		{"Priya", "Nair", "3333", 24, 28.5, 33},
	}

	for _, s := range seeds {
		hash, err := security.HashPin(s.pin)
		if err != nil {
			return err
		}
		emp := model.Employee{
			ClientID:     clientID,
			FirstName:    s.first,
			Surname:      s.surname,
			PinHash:      hash,
			WeekdayRate:  s.weekday,
			SaturdayRate: s.sat,
			SundayRate:   s.sun,
			PayType:      model.PayTypeHourly,
			Status:       model.EmployeeStatusActive,
		}
		if err := db.Create(&emp).Error; err != nil {
			return err
		}

		// two weeks of shifts ending yesterday, weekends included
		day := timeutil.Now().AddDate(0, 0, -14)
		for i := 0; i < 14; i++ {
			date := day.AddDate(0, 0, i)
			start := "08:00"
			end := "16:00"
			if timeutil.DayTypeOf(date) != timeutil.DayTypeWeekday {
				start = "09:00"
				end = "13:00"
			}
			ts := model.Timesheet{
				ClientID:   clientID,
				EmployeeID: emp.ID,
				WorkDate:   timeutil.MustParseDate(date.Format(timeutil.DateLayout)),
				StartTime:  utils.Ptr(start),
				EndTime:    utils.Ptr(end),
			}
			if err := db.Create(&ts).Error; err != nil {
				return err
			}
		}
	}

	// fill in break deductions and totals in one pass
	var rules []model.BreakRule
	if err := db.Where("client_id = ?", clientID).Find(&rules).Error; err != nil {
		return err
	}
	_, err := payroll.RecomputeClient(db, clientID, rules)
	return err
}
