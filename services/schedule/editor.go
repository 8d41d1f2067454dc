package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"bookingadmin/models"

	"github.com/google/uuid"
)

var (
	ErrUnknownDay = errors.New("unknown weekday")
	ErrSlotIndex  = errors.New("time slot index out of range")
	ErrSlotField  = errors.New("unknown time slot field")
)

// SaveFunc persists the edited schedule.
type SaveFunc func(ctx context.Context, schedule models.EmployeeSchedule) error

// ExceptionInput describes a new exception. Type defaults to holiday; a modified exception
// without slots starts with the default slot.
type ExceptionInput struct {
	Date      string            `json:"date" binding:"required"`
	Type      string            `json:"type" binding:"omitempty,oneof=holiday modified"`
	Note      string            `json:"note"`
	TimeSlots []models.TimeSlot `json:"timeSlots"`
}

// Editor holds a working copy of one employee's schedule. Slot contents are never checked:
// start after end, overlapping slots and duplicate exception dates are all kept as entered.
// An Editor is not safe for concurrent use.
type Editor struct {
	schedule models.EmployeeSchedule
	save     SaveFunc
	newID    func() string
}

// NewEditor starts editing a normalized copy of schedule.
func NewEditor(schedule *models.EmployeeSchedule, save SaveFunc) *Editor {
	return &Editor{
		schedule: Normalize(schedule),
		save:     save,
		newID:    func() string { return uuid.New().String() },
	}
}

func (e *Editor) day(name string) (models.DaySchedule, error) {
	if !models.IsWeekday(name) {
		return models.DaySchedule{}, fmt.Errorf("%w: %q", ErrUnknownDay, name)
	}
	return e.schedule.WeeklySchedule[name], nil
}

// ToggleWorkingDay flips isWorking. Switching on a day without slots seeds the default slot;
// switching off keeps the slots for when the day is switched back on.
func (e *Editor) ToggleWorkingDay(name string) error {
	ds, err := e.day(name)
	if err != nil {
		return err
	}
	ds.IsWorking = !ds.IsWorking
	if ds.IsWorking && len(ds.TimeSlots) == 0 {
		ds.TimeSlots = []models.TimeSlot{DefaultSlot()}
	}
	e.schedule.WeeklySchedule[name] = ds
	return nil
}

// AddTimeSlot appends the default slot.
func (e *Editor) AddTimeSlot(name string) error {
	ds, err := e.day(name)
	if err != nil {
		return err
	}
	ds.TimeSlots = append(cloneSlots(ds.TimeSlots), DefaultSlot())
	e.schedule.WeeklySchedule[name] = ds
	return nil
}

// RemoveTimeSlot removes slot i; later slots shift left.
func (e *Editor) RemoveTimeSlot(name string, i int) error {
	ds, err := e.day(name)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(ds.TimeSlots) {
		return fmt.Errorf("%w: %s[%d]", ErrSlotIndex, name, i)
	}
	slots := make([]models.TimeSlot, 0, len(ds.TimeSlots)-1)
	slots = append(slots, ds.TimeSlots[:i]...)
	slots = append(slots, ds.TimeSlots[i+1:]...)
	ds.TimeSlots = slots
	e.schedule.WeeklySchedule[name] = ds
	return nil
}

// UpdateTimeSlot sets the "start" or "end" of slot i.
func (e *Editor) UpdateTimeSlot(name string, i int, field, value string) error {
	ds, err := e.day(name)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(ds.TimeSlots) {
		return fmt.Errorf("%w: %s[%d]", ErrSlotIndex, name, i)
	}
	slots := cloneSlots(ds.TimeSlots)
	switch field {
	case "start":
		slots[i].Start = value
	case "end":
		slots[i].End = value
	default:
		return fmt.Errorf("%w: %q", ErrSlotField, field)
	}
	ds.TimeSlots = slots
	e.schedule.WeeklySchedule[name] = ds
	return nil
}

// CopyDay gives every target day the source's isWorking flag and its own copy of the source
// slots. The source itself is skipped, so an empty or self-only target list changes nothing.
func (e *Editor) CopyDay(from string, targets []string) error {
	src, err := e.day(from)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if !models.IsWeekday(t) {
			return fmt.Errorf("%w: %q", ErrUnknownDay, t)
		}
	}
	for _, t := range targets {
		if t == from {
			continue
		}
		e.schedule.WeeklySchedule[t] = models.DaySchedule{
			IsWorking: src.IsWorking,
			TimeSlots: cloneSlots(src.TimeSlots),
		}
	}
	return nil
}

// AddException appends a new exception with a fresh id and returns it.
func (e *Editor) AddException(in ExceptionInput) models.Exception {
	ex := models.Exception{
		ID:   e.newID(),
		Date: in.Date,
		Type: in.Type,
		Note: in.Note,
	}
	if ex.Type != models.ExceptionModified {
		ex.Type = models.ExceptionHoliday
	} else if len(in.TimeSlots) == 0 {
		ex.TimeSlots = []models.TimeSlot{DefaultSlot()}
	} else {
		ex.TimeSlots = cloneSlots(in.TimeSlots)
	}
	e.schedule.Exceptions = append(e.schedule.Exceptions, ex)
	return ex
}

// RemoveException deletes the exception with the given id and reports whether one was found.
func (e *Editor) RemoveException(id string) bool {
	for i, ex := range e.schedule.Exceptions {
		if ex.ID == id {
			e.schedule.Exceptions = append(e.schedule.Exceptions[:i:i], e.schedule.Exceptions[i+1:]...)
			return true
		}
	}
	return false
}

// SortedExceptions returns the exceptions ordered by date; equal dates keep insertion order.
func (e *Editor) SortedExceptions() []models.Exception {
	out := Clone(models.EmployeeSchedule{Exceptions: e.schedule.Exceptions}).Exceptions
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Schedule returns a deep copy of the current state with exceptions in date order.
func (e *Editor) Schedule() models.EmployeeSchedule {
	s := Clone(e.schedule)
	s.Exceptions = e.SortedExceptions()
	return s
}

// Save passes the current state to the save callback.
func (e *Editor) Save(ctx context.Context) error {
	if e.save == nil {
		return errors.New("schedule editor has no save callback")
	}
	return e.save(ctx, e.Schedule())
}
