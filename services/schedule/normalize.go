// Package schedule edits an employee's weekly schedule and its date exceptions in memory
// and hands the result to a save callback.
package schedule

import (
	"fmt"
	"time"

	"bookingadmin/models"
)

const (
	DefaultStart = "09:00"
	DefaultEnd   = "17:00"

	dateLayout = "2006-01-02"
	// Upper bound on the days a single legacy range expands to.
	maxRangeDays = 366
)

// DefaultSlot is the slot seeded when a day is switched on or a slot is added.
func DefaultSlot() models.TimeSlot {
	return models.TimeSlot{Start: DefaultStart, End: DefaultEnd}
}

// DefaultSchedule works Monday to Friday, 09:00 to 17:00.
func DefaultSchedule() models.EmployeeSchedule {
	weekly := make(models.WeeklySchedule, len(models.Weekdays))
	for _, day := range models.Weekdays {
		working := day != "saturday" && day != "sunday"
		ds := models.DaySchedule{IsWorking: working, TimeSlots: []models.TimeSlot{}}
		if working {
			ds.TimeSlots = []models.TimeSlot{DefaultSlot()}
		}
		weekly[day] = ds
	}
	return models.EmployeeSchedule{WeeklySchedule: weekly, Exceptions: []models.Exception{}}
}

// Normalize returns a complete copy of raw: a nil schedule becomes DefaultSchedule, every
// weekday key is present (missing days are off with no slots), nil slices are empty, and
// legacy exceptions are rewritten to the single-date shape.
func Normalize(raw *models.EmployeeSchedule) models.EmployeeSchedule {
	if raw == nil {
		return DefaultSchedule()
	}

	weekly := make(models.WeeklySchedule, len(models.Weekdays))
	for _, day := range models.Weekdays {
		ds := raw.WeeklySchedule[day]
		weekly[day] = models.DaySchedule{IsWorking: ds.IsWorking, TimeSlots: cloneSlots(ds.TimeSlots)}
	}

	exceptions := make([]models.Exception, 0, len(raw.Exceptions))
	for _, ex := range raw.Exceptions {
		exceptions = append(exceptions, normalizeException(ex)...)
	}
	return models.EmployeeSchedule{WeeklySchedule: weekly, Exceptions: exceptions}
}

// normalizeException fills the type, drops slots of non-modified exceptions and expands a
// legacy startDate/endDate range into one exception per day. The first day keeps the id.
func normalizeException(ex models.Exception) []models.Exception {
	if ex.Type != models.ExceptionModified {
		ex.Type = models.ExceptionHoliday
		ex.TimeSlots = nil
	} else {
		ex.TimeSlots = cloneSlots(ex.TimeSlots)
	}

	startDate, endDate := ex.StartDate, ex.EndDate
	ex.StartDate, ex.EndDate = "", ""
	if ex.Date != "" || startDate == "" {
		return []models.Exception{ex}
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		ex.Date = startDate
		return []models.Exception{ex}
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil || end.Before(start) {
		end = start
	}

	var out []models.Exception
	for i, d := 0, start; !d.After(end) && i < maxRangeDays; i, d = i+1, d.AddDate(0, 0, 1) {
		day := ex
		day.Date = d.Format(dateLayout)
		day.TimeSlots = cloneSlots(ex.TimeSlots)
		if ex.Type != models.ExceptionModified {
			day.TimeSlots = nil
		}
		if i > 0 {
			day.ID = fmt.Sprintf("%s-%d", ex.ID, i)
		}
		out = append(out, day)
	}
	return out
}

// Clone deep-copies a schedule.
func Clone(s models.EmployeeSchedule) models.EmployeeSchedule {
	weekly := make(models.WeeklySchedule, len(s.WeeklySchedule))
	for day, ds := range s.WeeklySchedule {
		weekly[day] = models.DaySchedule{IsWorking: ds.IsWorking, TimeSlots: cloneSlots(ds.TimeSlots)}
	}
	exceptions := make([]models.Exception, len(s.Exceptions))
	for i, ex := range s.Exceptions {
		exceptions[i] = ex
		if ex.TimeSlots != nil {
			exceptions[i].TimeSlots = cloneSlots(ex.TimeSlots)
		}
	}
	return models.EmployeeSchedule{WeeklySchedule: weekly, Exceptions: exceptions}
}

func cloneSlots(slots []models.TimeSlot) []models.TimeSlot {
	out := make([]models.TimeSlot, len(slots))
	copy(out, slots)
	return out
}

// WorkingDaysCount is the number of weekdays marked as working.
func WorkingDaysCount(s models.EmployeeSchedule) int {
	n := 0
	for _, day := range models.Weekdays {
		if s.WeeklySchedule[day].IsWorking {
			n++
		}
	}
	return n
}

func ExceptionsCount(s models.EmployeeSchedule) int {
	return len(s.Exceptions)
}
