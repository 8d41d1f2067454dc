package models

// Weekdays lists the keys of a WeeklySchedule in display order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// IsWeekday reports whether day is one of Weekdays.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

const (
	ExceptionHoliday  = "holiday"
	ExceptionModified = "modified"
)

// TimeSlot is a start/end time-of-day pair in "HH:MM". Slots are neither sorted
// nor checked for overlap.
type TimeSlot struct {
	Start string `bson:"start" firestore:"start" json:"start"`
	End   string `bson:"end" firestore:"end" json:"end"`
}

type DaySchedule struct {
	IsWorking bool       `bson:"isWorking" firestore:"isWorking" json:"isWorking"`
	TimeSlots []TimeSlot `bson:"timeSlots" firestore:"timeSlots" json:"timeSlots"`
}

// WeeklySchedule maps a weekday name to its schedule.
type WeeklySchedule map[string]DaySchedule

// Exception overrides the weekly schedule on a single calendar date.
// StartDate and EndDate are only read from legacy documents and are cleared on normalization.
type Exception struct {
	ID        string     `bson:"id" firestore:"id" json:"id"`
	Date      string     `bson:"date" firestore:"date" json:"date"`
	Type      string     `bson:"type" firestore:"type" json:"type"`
	Note      string     `bson:"note,omitempty" firestore:"note,omitempty" json:"note,omitempty"`
	TimeSlots []TimeSlot `bson:"timeSlots,omitempty" firestore:"timeSlots,omitempty" json:"timeSlots,omitempty"`
	StartDate string     `bson:"startDate,omitempty" firestore:"startDate,omitempty" json:"-"`
	EndDate   string     `bson:"endDate,omitempty" firestore:"endDate,omitempty" json:"-"`
}

type EmployeeSchedule struct {
	WeeklySchedule WeeklySchedule `bson:"weeklySchedule" firestore:"weeklySchedule" json:"weeklySchedule"`
	Exceptions     []Exception    `bson:"exceptions" firestore:"exceptions" json:"exceptions"`
}
