// Package week содержит общие для обоих календарей расчёты недельного окна.
package week

import (
	"fmt"
	"time"
)

const (
	// DaysInWeek - количество дней в окне календаря (Пн-Вс)
	DaysInWeek = 7

	dateLayout = "2006-01-02"
)

// StartOf возвращает понедельник 00:00 недели, в которую попадает t.
// Воскресенье считается последним днём предыдущей недели.
func StartOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	daysSinceMonday := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	return day.AddDate(0, 0, -daysSinceMonday)
}

// FormatDate форматирует дату как YYYY-MM-DD в часовом поясе самой даты
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate разбирает YYYY-MM-DD в полночь указанного часового пояса
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Days возвращает семь дат окна, начиная с anchor
func Days(anchor time.Time) [DaysInWeek]time.Time {
	var days [DaysInWeek]time.Time
	for i := range days {
		days[i] = anchor.AddDate(0, 0, i)
	}
	return days
}

// Shift сдвигает якорь недели на weeks недель
func Shift(anchor time.Time, weeks int) time.Time {
	return anchor.AddDate(0, 0, weeks*DaysInWeek)
}

// IsSameDay проверяет, являются ли две даты одним днем
func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
