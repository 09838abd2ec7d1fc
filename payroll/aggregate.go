package payroll

import (
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/timeutil"
)

// Summary is an employee's hours bucketed by day type over a date range,
// with the pay computed from the employee's three rates. Dashboards, the
// employee detail page and the exports all consume this one reduction.
type Summary struct {
	EmployeeID    int32   `json:"employeeId"`
	WeekdayHours  float64 `json:"weekdayHours"`
	SaturdayHours float64 `json:"saturdayHours"`
	SundayHours   float64 `json:"sundayHours"`
	TotalHours    float64 `json:"totalHours"`
	TotalPay      float64 `json:"totalPay"`
}

// Aggregate reduces an arbitrarily ordered sequence of one employee's
// timesheets into a Summary. It sums the persisted, break-adjusted
// TotalHours only; date-range scoping is the caller's job. Rounding is
// deferred to formatting so long ranges don't compound rounding error.
func Aggregate(timesheets []model.Timesheet, emp model.Employee) Summary {
	s := Summary{EmployeeID: emp.ID}

	for _, ts := range timesheets {
		switch timeutil.DayTypeOf(ts.WorkDate) {
		case timeutil.DayTypeSaturday:
			s.SaturdayHours += ts.TotalHours
		case timeutil.DayTypeSunday:
			s.SundayHours += ts.TotalHours
		default:
			s.WeekdayHours += ts.TotalHours
		}
	}

	s.TotalHours = s.WeekdayHours + s.SaturdayHours + s.SundayHours
	s.TotalPay = payFor(s, emp)
	return s
}

// payFor is the single branch point on pay type. Day-rate employees are
// still paid on the hourly formula; the business has not defined the
// days-worked formula, so the branch exists but both arms match.
// TODO: day_rate should pay per day worked once the rate semantics are
// agreed with payroll.
func payFor(s Summary, emp model.Employee) float64 {
	switch emp.PayType {
	case model.PayTypeDayRate:
		return hourlyPay(s, emp)
	default:
		return hourlyPay(s, emp)
	}
}

func hourlyPay(s Summary, emp model.Employee) float64 {
	return s.WeekdayHours*emp.WeekdayRate +
		s.SaturdayHours*emp.SaturdayRate +
		s.SundayHours*emp.SundayRate
}
