package schedule

import (
	"errors"
	"fmt"
)

// Op kinds accepted by ApplyOps.
const (
	OpToggleDay       = "toggleDay"
	OpAddSlot         = "addSlot"
	OpRemoveSlot      = "removeSlot"
	OpUpdateSlot      = "updateSlot"
	OpCopyDay         = "copyDay"
	OpAddException    = "addException"
	OpRemoveException = "removeException"
)

var (
	ErrUnknownOp        = errors.New("unknown schedule operation")
	ErrExceptionMissing = errors.New("exception not found")
)

// Op is one editor command as sent by the staff screen.
type Op struct {
	Op        string          `json:"op" binding:"required,oneof=toggleDay addSlot removeSlot updateSlot copyDay addException removeException"`
	Day       string          `json:"day,omitempty" binding:"omitempty,weekday"`
	Index     int             `json:"index,omitempty" binding:"gte=0"`
	Field     string          `json:"field,omitempty" binding:"omitempty,oneof=start end"`
	Value     string          `json:"value,omitempty" binding:"omitempty,hhmm"`
	Targets   []string        `json:"targets,omitempty" binding:"omitempty,dive,weekday"`
	Exception *ExceptionInput `json:"exception,omitempty"`
	ID        string          `json:"id,omitempty"`
}

// ApplyOps runs ops in order and stops at the first failure. Earlier operations stay
// applied to the editor; nothing is saved.
func ApplyOps(e *Editor, ops []Op) error {
	for i, op := range ops {
		if err := apply(e, op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}

func apply(e *Editor, op Op) error {
	switch op.Op {
	case OpToggleDay:
		return e.ToggleWorkingDay(op.Day)
	case OpAddSlot:
		return e.AddTimeSlot(op.Day)
	case OpRemoveSlot:
		return e.RemoveTimeSlot(op.Day, op.Index)
	case OpUpdateSlot:
		return e.UpdateTimeSlot(op.Day, op.Index, op.Field, op.Value)
	case OpCopyDay:
		return e.CopyDay(op.Day, op.Targets)
	case OpAddException:
		if op.Exception == nil {
			return errors.New("missing exception")
		}
		e.AddException(*op.Exception)
		return nil
	case OpRemoveException:
		if !e.RemoveException(op.ID) {
			return fmt.Errorf("%w: %q", ErrExceptionMissing, op.ID)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
}
