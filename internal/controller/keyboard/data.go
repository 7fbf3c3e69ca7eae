package keyboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// ErrInvalidFormat - callback data не разбирается
var ErrInvalidFormat = errors.New("invalid callback format")

// Общие callbacks
const (
	Noop = "noop"

	DialogPrefix  = "dlg:"
	DialogSkip    = "dlg:skip"
	DialogConfirm = "dlg:confirm"
	DialogCancel  = "dlg:cancel"
	DialogDentist = "dlg:dentist:" // dlg:dentist:5
)

// Календарь. Второй сегмент - вид календаря: s (персонал) или p (пациент).
const (
	CalendarPrefix = "cal:"

	ActionPrev    = "prev"
	ActionNext    = "next"
	ActionToday   = "today"
	ActionRefresh = "refresh"
	ActionWeek    = "week"    // cal:s:week
	ActionDay     = "day"     // cal:s:day:3
	ActionSlot    = "slot"    // cal:s:slot:3:10 (день:окно)
	ActionDentist = "dentist" // cal:p:dentist:5
	ActionPick    = "pick"    // cal:p:pick - вернуться к выбору дентиста
)

// View - вид календаря в callback data
type View string

const (
	ViewStaff   View = "s"
	ViewPatient View = "p"
)

// Одонтограмма
const (
	OdontogramPrefix = "odo:"

	OdontogramTooth   = "odo:t:" // odo:t:1.8
	OdontogramStatus  = "odo:s:" // odo:s:caries, odo:s:none
	OdontogramTeeth   = "odo:teeth"
	OdontogramNotes   = "odo:notes"
	OdontogramPreview = "odo:view"
	OdontogramSave    = "odo:save"
	OdontogramClose   = "odo:close"
	OdontogramDiscard = "odo:discard"
)

// StatusNone - значение callback для снятия статуса зуба
const StatusNone = "none"

// CalendarAction - разобранный callback календаря
type CalendarAction struct {
	View    View
	Action  string
	Day     int
	Slot    int
	Dentist int64
}

// Calendar строит callback календаря
func Calendar(view View, action string, args ...int64) string {
	var sb strings.Builder
	sb.WriteString(CalendarPrefix)
	sb.WriteString(string(view))
	sb.WriteString(":")
	sb.WriteString(action)
	for _, a := range args {
		sb.WriteString(":")
		sb.WriteString(strconv.FormatInt(a, 10))
	}
	return sb.String()
}

// ParseCalendar разбирает "cal:<view>:<action>[:args]"
func ParseCalendar(data string) (CalendarAction, error) {
	parts := strings.Split(strings.TrimPrefix(data, CalendarPrefix), ":")
	if !strings.HasPrefix(data, CalendarPrefix) || len(parts) < 2 {
		return CalendarAction{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	a := CalendarAction{View: View(parts[0]), Action: parts[1]}
	if a.View != ViewStaff && a.View != ViewPatient {
		return CalendarAction{}, fmt.Errorf("%w: unknown view in %q", ErrInvalidFormat, data)
	}

	args := parts[2:]
	nums := make([]int64, len(args))
	for i, s := range args {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return CalendarAction{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		nums[i] = n
	}

	switch a.Action {
	case ActionPrev, ActionNext, ActionToday, ActionRefresh, ActionWeek, ActionPick:
		if len(nums) != 0 {
			return CalendarAction{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	case ActionDay:
		if len(nums) != 1 {
			return CalendarAction{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		a.Day = int(nums[0])
	case ActionSlot:
		if len(nums) != 2 {
			return CalendarAction{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		a.Day, a.Slot = int(nums[0]), int(nums[1])
	case ActionDentist:
		if len(nums) != 1 || a.View != ViewPatient {
			return CalendarAction{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		a.Dentist = nums[0]
	default:
		return CalendarAction{}, fmt.Errorf("%w: unknown action in %q", ErrInvalidFormat, data)
	}
	return a, nil
}

// ToothCallback строит callback выбора зуба
func ToothCallback(id string) string {
	return OdontogramTooth + id
}

// StatusCallback строит callback выбора статуса
func StatusCallback(status model.ToothStatus) string {
	if status == model.ToothStatusNone {
		return OdontogramStatus + StatusNone
	}
	return OdontogramStatus + string(status)
}

// ParseStatus разбирает callback статуса
func ParseStatus(data string) (model.ToothStatus, error) {
	raw, ok := strings.CutPrefix(data, OdontogramStatus)
	if !ok || raw == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	if raw == StatusNone {
		return model.ToothStatusNone, nil
	}
	status := model.ToothStatus(raw)
	if !status.IsKnown() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidFormat, raw)
	}
	return status, nil
}
