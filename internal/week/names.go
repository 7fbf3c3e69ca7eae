package week

import (
	"fmt"
	"time"
)

// Испанские названия: клиника работает на испанском, интерфейс тоже
var (
	dayNames = [DaysInWeek]string{
		"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
	}
	dayShortNames = [DaysInWeek]string{
		"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom",
	}
	monthNames = [12]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
)

// dayIndex переводит time.Weekday в индекс с понедельника
func dayIndex(weekday time.Weekday) int {
	if weekday == time.Sunday {
		return 6
	}
	return int(weekday) - 1
}

// DayName возвращает полное название дня недели ("Lunes")
func DayName(weekday time.Weekday) string {
	return dayNames[dayIndex(weekday)]
}

// DayShortName возвращает короткое название дня недели ("Lun")
func DayShortName(weekday time.Weekday) string {
	return dayShortNames[dayIndex(weekday)]
}

// MonthName возвращает название месяца ("Enero")
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month-1]
}

// DayLabel форматирует заголовок колонки дня: "13 Octubre"
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), MonthName(t.Month()))
}

// Title возвращает заголовок недели: месяц или диапазон месяцев
func Title(anchor time.Time) string {
	end := anchor.AddDate(0, 0, DaysInWeek-1)
	if anchor.Month() == end.Month() {
		return fmt.Sprintf("%s %d", MonthName(anchor.Month()), anchor.Year())
	}
	if anchor.Year() == end.Year() {
		return fmt.Sprintf("%s - %s %d", MonthName(anchor.Month()), MonthName(end.Month()), end.Year())
	}
	return fmt.Sprintf("%s %d - %s %d", MonthName(anchor.Month()), anchor.Year(), MonthName(end.Month()), end.Year())
}

// RangeLabel форматирует окно недели: "13.10 - 19.10.2025"
func RangeLabel(anchor time.Time) string {
	end := anchor.AddDate(0, 0, DaysInWeek-1)
	return fmt.Sprintf("%s - %s", anchor.Format("02.01"), end.Format("02.01.2006"))
}
