// Package render рисует недельную сетку календаря в PNG для отправки в чат
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/week"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	headerHeight     = 90
	dayHeaderHeight  = 44
	rowHeight        = 34
	leftLabelsWidth  = 70
	legendWidth      = 150
	dayPaddingX      = 6
	cellPaddingY     = 3
	slotBorderRadius = 5.0
	shadowOffset     = 2.0
	maxBadgeRunes    = 18

	gridTop     = headerHeight + dayHeaderHeight
	imageHeight = gridTop + calendar.SlotsPerDay*rowHeight + 20
	dayWidth    = (imageWidth - leftLabelsWidth - legendWidth) / week.DaysInWeek
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 70}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{228, 228, 228, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}
	placeholderColor = color.RGBA{110, 115, 120, 255}

	cellAvailableColor = color.RGBA{133, 193, 85, 220}
	cellOccupiedColor  = color.RGBA{255, 182, 193, 255}
	cellPastColor      = color.RGBA{200, 200, 200, 160}
	cellTextColor      = color.RGBA{20, 24, 28, 230}
	cellBookedText     = color.RGBA{120, 40, 50, 255}
	cellShadowColor    = color.RGBA{0, 0, 0, 20}

	appointmentColors = map[model.AppointmentStatus]color.RGBA{
		model.AppointmentStatusScheduled: {255, 214, 102, 255},
		model.AppointmentStatusConfirmed: {116, 185, 255, 255},
		model.AppointmentStatusCanceled:  {158, 158, 158, 200},
		model.AppointmentStatusDone:      {178, 223, 138, 255},
	}

	legendTextColor = color.RGBA{70, 74, 78, 220}
)

// Options - необязательные части изображения
type Options struct {
	Subtitle string    // например, имя дентиста
	Now      time.Time // момент для подсветки сегодняшнего дня и линии текущего времени
}

// WeekImage рисует сетку недели: заголовок, дни, 22 строки окон и легенду
func WeekImage(grid *calendar.Grid, opts Options) ([]byte, error) {
	if grid == nil {
		return nil, fmt.Errorf("render week image: nil grid")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	now := opts.Now.In(grid.Anchor.Location())

	dc := createCanvas()
	dc.SetFontFace(basicfont.Face7x13)

	drawHeader(dc, grid.Anchor, opts.Subtitle)
	drawSlotLabels(dc)
	for day, date := range week.Days(grid.Anchor) {
		x := float64(leftLabelsWidth + day*dayWidth)
		isToday := week.IsSameDay(date, now)
		drawDayBackground(dc, x, day, isToday)
		drawDayHeader(dc, date, x)
		drawRowLines(dc, x)
		if grid.Placeholder == "" {
			for _, cell := range grid.Day(day) {
				drawCell(dc, cell, x)
			}
		}
	}

	if grid.Placeholder != "" {
		drawPlaceholder(dc, grid.Placeholder)
	} else {
		drawCurrentTimeLine(dc, grid.Anchor, now)
	}
	drawLegend(dc, grid.Placeholder == "")

	return encodeImage(dc)
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует месяц, диапазон дат и подзаголовок
func drawHeader(dc *gg.Context, anchor time.Time, subtitle string) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(week.Title(anchor), float64(leftLabelsWidth), float64(headerHeight)/3, 0, 0.5)

	line := week.RangeLabel(anchor)
	if subtitle != "" {
		line = subtitle + "  |  " + line
	}
	dc.SetColor(hourLabelColor)
	dc.DrawStringAnchored(line, float64(leftLabelsWidth), float64(headerHeight)*2/3, 0, 0.5)
}

// drawSlotLabels рисует колонку времени слева
func drawSlotLabels(dc *gg.Context) {
	dc.SetColor(hourLabelColor)
	for slot, label := range calendar.SlotLabels() {
		y := float64(gridTop + slot*rowHeight)
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y+rowHeight/2, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x float64, day int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case day%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, headerHeight, dayWidth, imageHeight-headerHeight)
	dc.Fill()
}

// drawDayHeader рисует "Lun" и "13 Octubre"
func drawDayHeader(dc *gg.Context, date time.Time, x float64) {
	cx := x + float64(dayWidth)/2
	dc.SetColor(textColor)
	dc.DrawStringAnchored(week.DayShortName(date.Weekday()), cx, headerHeight+dayHeaderHeight/3, 0.5, 0.5)
	dc.DrawStringAnchored(week.DayLabel(date), cx, headerHeight+dayHeaderHeight*2/3, 0.5, 0.5)
}

func drawRowLines(dc *gg.Context, x float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for slot := 0; slot <= calendar.SlotsPerDay; slot++ {
		y := float64(gridTop + slot*rowHeight)
		dc.DrawLine(x, y, x+dayWidth, y)
		dc.Stroke()
	}
}

// drawCell рисует одно окно; у занятого окна с записью - имя пациента
func drawCell(dc *gg.Context, cell calendar.Cell, x float64) {
	y := float64(gridTop+cell.Slot*rowHeight) + cellPaddingY
	w := float64(dayWidth - dayPaddingX*2)
	h := float64(rowHeight - cellPaddingY*2)
	fill := cellColor(cell)

	if cell.State != calendar.CellPast {
		dc.SetColor(cellShadowColor)
		dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, y+shadowOffset, w, h, slotBorderRadius)
		dc.Fill()
	}

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, y, w, h, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, y, w, h, slotBorderRadius)
	dc.Stroke()

	text := cellText(cell)
	if text == "" {
		return
	}
	dc.SetColor(cellTextColor)
	if cell.State == calendar.CellOccupied {
		dc.SetColor(cellBookedText)
	}
	dc.DrawStringAnchored(text, x+dayPaddingX+6, y+h/2, 0, 0.5)
}

// cellColor возвращает цвет окна: записи красятся по статусу
func cellColor(cell calendar.Cell) color.RGBA {
	switch cell.State {
	case calendar.CellAvailable:
		return cellAvailableColor
	case calendar.CellOccupied:
		if cell.Appointment != nil {
			if c, ok := appointmentColors[cell.Appointment.Status]; ok {
				return c
			}
		}
		return cellOccupiedColor
	default:
		return cellPastColor
	}
}

// cellText - подпись только в первом окне записи, чтобы имя не повторялось
func cellText(cell calendar.Cell) string {
	if cell.State != calendar.CellOccupied || cell.Appointment == nil {
		return ""
	}
	if !cell.Start.Equal(cell.Appointment.Start) && cell.Slot != 0 {
		return ""
	}
	return truncate(cell.Appointment.PatientName, maxBadgeRunes)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени поверх сегодняшней недели
func drawCurrentTimeLine(dc *gg.Context, anchor, now time.Time) {
	if !week.StartOf(now).Equal(anchor) {
		return
	}
	minutes := float64(now.Hour()*60+now.Minute()) - calendar.FirstHour*60
	if minutes < 0 || minutes > float64(calendar.SlotsPerDay)*calendar.SlotDuration.Minutes() {
		return
	}

	y := gridTop + minutes/calendar.SlotDuration.Minutes()*rowHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(leftLabelsWidth, y, leftLabelsWidth+week.DaysInWeek*dayWidth, y)
	dc.Stroke()
}

func drawPlaceholder(dc *gg.Context, text string) {
	dc.SetColor(placeholderColor)
	cx := leftLabelsWidth + float64(week.DaysInWeek*dayWidth)/2
	cy := float64(gridTop) + float64(calendar.SlotsPerDay*rowHeight)/2
	dc.DrawStringAnchored(text, cx, cy, 0.5, 0.5)
}

type legendItem struct {
	Label string
	Clr   color.Color
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, withStatuses bool) {
	items := []legendItem{
		{"Disponible", cellAvailableColor},
		{"Ocupado", cellOccupiedColor},
		{"Pasado", cellPastColor},
	}
	if withStatuses {
		items = append(items,
			legendItem{"Programada", appointmentColors[model.AppointmentStatusScheduled]},
			legendItem{"Confirmada", appointmentColors[model.AppointmentStatusConfirmed]},
			legendItem{"Cancelada", appointmentColors[model.AppointmentStatusCanceled]},
			legendItem{"Realizada", appointmentColors[model.AppointmentStatusDone]},
		)
	}

	boxW, boxH := 20.0, 14.0
	liX := float64(leftLabelsWidth + week.DaysInWeek*dayWidth + 12)
	liY := float64(gridTop)

	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2, 0, 0.5)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}
