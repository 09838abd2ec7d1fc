package payroll

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/timeutil"
)

func ratedEmployee() model.Employee {
	return model.Employee{
		ID:           7,
		WeekdayRate:  25,
		SaturdayRate: 30,
		SundayRate:   35,
		PayType:      model.PayTypeHourly,
	}
}

func sheet(date string, hours float64) model.Timesheet {
	return model.Timesheet{WorkDate: timeutil.MustParseDate(date), TotalHours: hours}
}

func TestAggregate(t *testing.T) {
	emp := ratedEmployee()

	// Mon 8h, Sat 4h, Sun 0h
	timesheets := []model.Timesheet{
		sheet("2025-10-20", 8),
		sheet("2025-10-25", 4),
		sheet("2025-10-26", 0),
	}

	s := Aggregate(timesheets, emp)
	assert.Equal(t, emp.ID, s.EmployeeID)
	assert.InDelta(t, 8, s.WeekdayHours, 1e-9)
	assert.InDelta(t, 4, s.SaturdayHours, 1e-9)
	assert.InDelta(t, 0, s.SundayHours, 1e-9)
	assert.InDelta(t, 12, s.TotalHours, 1e-9)
	assert.InDelta(t, 8*25+4*30, s.TotalPay, 1e-9)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil, ratedEmployee())
	assert.Zero(t, s.TotalHours)
	assert.Zero(t, s.TotalPay)
}

func TestAggregateOrderIndependent(t *testing.T) {
	emp := ratedEmployee()
	timesheets := []model.Timesheet{
		sheet("2025-10-20", 7.5),
		sheet("2025-10-21", 8.25),
		sheet("2025-10-22", 6),
		sheet("2025-10-25", 5.5),
		sheet("2025-10-26", 3.75),
	}

	expected := Aggregate(timesheets, emp)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.Timesheet, len(timesheets))
		copy(shuffled, timesheets)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, expected, Aggregate(shuffled, emp))
	}
}

func TestAggregateBucketsSumToTotal(t *testing.T) {
	emp := ratedEmployee()

	// many small fractional entries across a month
	var timesheets []model.Timesheet
	day := timeutil.MustParseDate("2025-10-01")
	for i := 0; i < 31; i++ {
		timesheets = append(timesheets, model.Timesheet{
			WorkDate:   day.AddDate(0, 0, i),
			TotalHours: 0.1 * float64(i%7),
		})
	}

	s := Aggregate(timesheets, emp)
	assert.InDelta(t, s.WeekdayHours+s.SaturdayHours+s.SundayHours, s.TotalHours, 1e-9)

	var direct float64
	for _, ts := range timesheets {
		direct += ts.TotalHours
	}
	assert.InDelta(t, direct, s.TotalHours, 1e-9)
}

func TestAggregateDayRateMatchesHourlyForNow(t *testing.T) {
	hourly := ratedEmployee()
	dayRate := ratedEmployee()
	dayRate.PayType = model.PayTypeDayRate

	timesheets := []model.Timesheet{
		sheet("2025-10-20", 8),
		sheet("2025-10-25", 4),
	}

	assert.Equal(t, Aggregate(timesheets, hourly).TotalPay, Aggregate(timesheets, dayRate).TotalPay)
}

func TestAggregateIgnoresRawHours(t *testing.T) {
	// in-progress sheet: zero total regardless of its start time
	emp := ratedEmployee()
	start := "08:00"
	ts := model.Timesheet{
		WorkDate:  timeutil.MustParseDate("2025-10-20"),
		StartTime: &start,
	}

	s := Aggregate([]model.Timesheet{ts}, emp)
	assert.Zero(t, s.TotalHours)
	assert.Zero(t, s.TotalPay)
}
