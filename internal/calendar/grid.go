// Package calendar строит недельную сетку получасовых окон и совмещает её
// с записями (календарь персонала) или со свободными окнами (календарь пациента).
package calendar

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/week"
)

// Границы сетки: с 09:00 до 20:00 шагом 30 минут
const (
	FirstHour    = 9
	LastHour     = 20
	SlotDuration = 30 * time.Minute
	SlotsPerDay  = (LastHour - FirstHour) * 2
	CellsPerWeek = SlotsPerDay * week.DaysInWeek
)

type CellState string

const (
	CellPast      CellState = "pasado"
	CellOccupied  CellState = "ocupado"
	CellAvailable CellState = "disponible"
)

// Cell - одна ячейка сетки (день × получасовое окно)
type Cell struct {
	Day         int
	Slot        int
	Start       time.Time
	End         time.Time
	State       CellState
	Appointment *model.Appointment // только для занятых ячеек календаря персонала
}

// Clickable проверяет что по ячейке можно начать создание записи или заявки
func (c Cell) Clickable() bool {
	return c.State == CellAvailable
}

// Grid - отрисованная неделя. Cells индексируется как [slot][day].
type Grid struct {
	Anchor      time.Time
	Cells       [SlotsPerDay][week.DaysInWeek]Cell
	Placeholder string // непустой, если сетку показать нельзя: нет дентиста или данных
}

// SlotLabel возвращает подпись строки сетки: "09:00", "09:30", ...
func SlotLabel(slot int) string {
	minutes := FirstHour*60 + slot*int(SlotDuration/time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SlotLabels возвращает подписи всех строк сетки
func SlotLabels() []string {
	labels := make([]string, SlotsPerDay)
	for i := range labels {
		labels[i] = SlotLabel(i)
	}
	return labels
}

// SlotStart вычисляет абсолютное время начала окна в часовом поясе якоря
func SlotStart(anchor time.Time, day, slot int) time.Time {
	minutes := FirstHour*60 + slot*int(SlotDuration/time.Minute)
	return time.Date(anchor.Year(), anchor.Month(), anchor.Day()+day, minutes/60, minutes%60, 0, 0, anchor.Location())
}

// Day возвращает все окна одного дня по порядку
func (g *Grid) Day(day int) []Cell {
	cells := make([]Cell, 0, SlotsPerDay)
	for slot := 0; slot < SlotsPerDay; slot++ {
		cells = append(cells, g.Cells[slot][day])
	}
	return cells
}

// Each обходит ячейки построчно: сначала все дни первого окна, затем второго
func (g *Grid) Each(fn func(Cell)) {
	for slot := 0; slot < SlotsPerDay; slot++ {
		for day := 0; day < week.DaysInWeek; day++ {
			fn(g.Cells[slot][day])
		}
	}
}

// Find возвращает ячейку, начинающуюся ровно в start
func (g *Grid) Find(start time.Time) (Cell, bool) {
	for slot := 0; slot < SlotsPerDay; slot++ {
		for day := 0; day < week.DaysInWeek; day++ {
			if g.Cells[slot][day].Start.Equal(start) {
				return g.Cells[slot][day], true
			}
		}
	}
	return Cell{}, false
}

// Count возвращает количество ячеек в состоянии state
func (g *Grid) Count(state CellState) int {
	n := 0
	g.Each(func(c Cell) {
		if c.State == state {
			n++
		}
	})
	return n
}

// buildGrid раскладывает окна недели и классифицирует каждое через classify.
// Прошедшие окна помечаются как pasado до вызова classify.
func buildGrid(anchor, now time.Time, classify func(c *Cell)) *Grid {
	g := &Grid{Anchor: anchor}
	for slot := 0; slot < SlotsPerDay; slot++ {
		for day := 0; day < week.DaysInWeek; day++ {
			start := SlotStart(anchor, day, slot)
			cell := Cell{
				Day:   day,
				Slot:  slot,
				Start: start,
				End:   start.Add(SlotDuration),
			}
			if start.Before(now) {
				cell.State = CellPast
			} else {
				classify(&cell)
			}
			g.Cells[slot][day] = cell
		}
	}
	return g
}

// BuildStaffGrid совмещает сетку с записями: окно занято, если его начало
// попадает в [start, end) какой-либо записи. Берётся первая подходящая запись.
func BuildStaffGrid(anchor time.Time, appointments []model.Appointment, now time.Time) *Grid {
	return buildGrid(anchor, now, func(c *Cell) {
		for i := range appointments {
			if appointments[i].Contains(c.Start) {
				appt := appointments[i]
				c.State = CellOccupied
				c.Appointment = &appt
				return
			}
		}
		c.State = CellAvailable
	})
}

// BuildPatientGrid совмещает сетку со свободными окнами дентиста: окно доступно
// только при точном совпадении начала и флаге disponible. Всё остальное занято.
func BuildPatientGrid(anchor time.Time, slots []model.AvailabilitySlot, now time.Time) *Grid {
	return buildGrid(anchor, now, func(c *Cell) {
		c.State = CellOccupied
		for _, s := range slots {
			if s.Start.Equal(c.Start) {
				if s.Available {
					c.State = CellAvailable
				}
				return
			}
		}
	})
}
