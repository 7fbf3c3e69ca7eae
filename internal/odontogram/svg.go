package odontogram

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// Palette - цвета зуба для одного статуса
type Palette struct {
	Fill      string
	Stroke    string
	Highlight string
}

const defaultPaletteKey = "default"

var palettes = map[model.ToothStatus]Palette{
	model.ToothStatusHealthy:    {Fill: "#f8f9fa", Stroke: "#28a745", Highlight: "#d4edda"},
	model.ToothStatusCavity:     {Fill: "#f8d7da", Stroke: "#dc3545", Highlight: "#f5c6cb"},
	model.ToothStatusFilling:    {Fill: "#fff3cd", Stroke: "#ffc107", Highlight: "#ffeaa7"},
	model.ToothStatusCrown:      {Fill: "#e7f3ff", Stroke: "#0d6efd", Highlight: "#cfe2ff"},
	model.ToothStatusRootCanal:  {Fill: "#d1ecf1", Stroke: "#17a2b8", Highlight: "#bee5eb"},
	model.ToothStatusImplant:    {Fill: "#f0e6ff", Stroke: "#6f42c1", Highlight: "#e0ccff"},
	model.ToothStatusExtraction: {Fill: "#e9ecef", Stroke: "#6c757d", Highlight: "#dee2e6"},
	model.ToothStatusMissing:    {Fill: "#e9ecef", Stroke: "#6c757d", Highlight: "#dee2e6"},
}

// DefaultPalette - нейтральные цвета для зуба без статуса или с неизвестным статусом
var DefaultPalette = Palette{Fill: "#ffffff", Stroke: "#ced4da", Highlight: "#f0f0f0"}

// PaletteFor возвращает цвета статуса; неизвестный статус получает нейтральные цвета
func PaletteFor(status model.ToothStatus) Palette {
	if p, ok := palettes[status]; ok {
		return p
	}
	return DefaultPalette
}

// paletteKey - часть id градиента; неизвестные статусы в разметку не попадают
func paletteKey(status model.ToothStatus) string {
	if _, ok := palettes[status]; ok {
		return string(status)
	}
	return defaultPaletteKey
}

// Цвета и размеры маркеров статусов
const (
	markerRed    = "#dc3545"
	markerYellow = "#ffc107"
	markerBlue   = "#0d6efd"
	markerCyan   = "#17a2b8"
	markerPurple = "#6f42c1"
	letterY      = "35"
	centerY      = "30"
)

type ellipse struct{ CX, CY, RX, RY string }

func (e ellipse) attrs() string {
	return fmt.Sprintf(`cx="%s" cy="%s" rx="%s" ry="%s"`, e.CX, e.CY, e.RX, e.RY)
}

// outline - элемент контура: rect с атрибутами или path с d
type outline struct {
	Tag   string
	Attrs string
}

func rect(attrs string) outline { return outline{Tag: "rect", Attrs: attrs} }
func path(d string) outline     { return outline{Tag: "path", Attrs: fmt.Sprintf(`d="%s"`, d)} }

type grooves struct {
	D       string
	Width   string
	Opacity string
	NoFill  bool
}

// shape - неизменная геометрия одной формы зуба
type shape struct {
	ViewBox   string
	Shadow    ellipse
	Body      outline
	Shine     ellipse
	Grooves   *grooves
	CavityR   string
	CenterX   string
	Filling   string // атрибуты прямоугольника пломбы
	Crown     outline
	LetterPx  int
	StrikeXYs [4]string
}

var shapes = map[ToothKind]shape{
	KindIncisor: {
		ViewBox:   "0 0 40 60",
		Shadow:    ellipse{"20", "10", "12", "4"},
		Body:      rect(`x="8" y="5" width="24" height="50" rx="4" ry="8"`),
		Shine:     ellipse{"20", "12", "8", "3"},
		CenterX:   "20",
		CavityR:   "6",
		Filling:   `x="14" y="25" width="12" height="8"`,
		Crown:     rect(`x="8" y="5" width="24" height="15" rx="4"`),
		LetterPx:  14,
		StrikeXYs: [4]string{"10", "10", "30", "50"},
	},
	KindCanine: {
		ViewBox:   "0 0 40 65",
		Shadow:    ellipse{"20", "10", "10", "3"},
		Body:      path("M 12 5 Q 20 0 28 5 L 26 55 Q 20 60 14 55 Z"),
		Shine:     ellipse{"20", "12", "6", "2"},
		CenterX:   "20",
		CavityR:   "5",
		Filling:   `x="15" y="25" width="10" height="8"`,
		Crown:     path("M 12 5 Q 20 0 28 5 L 26 20 Q 20 25 14 20 Z"),
		LetterPx:  12,
		StrikeXYs: [4]string{"12", "8", "28", "52"},
	},
	KindPremolar: {
		ViewBox: "0 0 45 60",
		Shadow:  ellipse{"22.5", "10", "14", "4"},
		Body:    path("M 10 5 Q 15 2 22.5 5 Q 30 2 35 5 L 33 55 Q 22.5 58 12 55 Z"),
		Shine:   ellipse{"22.5", "12", "10", "3"},
		Grooves: &grooves{
			D:       "M 18 25 L 18 35 M 22.5 25 L 22.5 35 M 27 25 L 27 35",
			Width:   "0.8",
			Opacity: "0.5",
		},
		CenterX:   "22.5",
		CavityR:   "6",
		Filling:   `x="16" y="25" width="13" height="10"`,
		Crown:     path("M 10 5 Q 15 2 22.5 5 Q 30 2 35 5 L 33 20 Q 22.5 23 12 20 Z"),
		LetterPx:  13,
		StrikeXYs: [4]string{"10", "8", "35", "52"},
	},
	KindMolar: {
		ViewBox: "0 0 50 65",
		Shadow:  ellipse{"25", "10", "18", "5"},
		Body:    path("M 8 5 Q 12 3 18 5 Q 25 2 32 5 Q 38 3 42 5 L 40 60 Q 25 63 10 60 Z"),
		Shine:   ellipse{"25", "12", "15", "4"},
		Grooves: &grooves{
			D:       "M 15 25 Q 20 30 25 25 Q 30 30 35 25 M 15 35 Q 20 40 25 35 Q 30 40 35 35",
			Width:   "1",
			Opacity: "0.4",
			NoFill:  true,
		},
		CenterX:   "25",
		CavityR:   "7",
		Filling:   `x="18" y="25" width="14" height="12"`,
		Crown:     path("M 8 5 Q 12 3 18 5 Q 25 2 32 5 Q 38 3 42 5 L 40 22 Q 25 25 10 22 Z"),
		LetterPx:  14,
		StrikeXYs: [4]string{"8", "8", "42", "57"},
	},
}

var toothTemplate = template.Must(template.New("tooth").Parse(
	`<svg viewBox="{{.Shape.ViewBox}}" xmlns="http://www.w3.org/2000/svg">` +
		`<defs><linearGradient id="{{.GradientID}}" x1="0%" y1="0%" x2="0%" y2="100%">` +
		`<stop offset="0%" style="stop-color:{{.Palette.Fill}};stop-opacity:1"/>` +
		`<stop offset="50%" style="stop-color:{{.Palette.Highlight}};stop-opacity:1"/>` +
		`<stop offset="100%" style="stop-color:{{.Palette.Fill}};stop-opacity:1"/>` +
		`</linearGradient></defs>` +
		`<ellipse {{.Shadow}} fill="rgba(0,0,0,0.05)"/>` +
		`<{{.Shape.Body.Tag}} {{.Shape.Body.Attrs}} fill="url(#{{.GradientID}})" stroke="{{.Palette.Stroke}}" stroke-width="1.5"/>` +
		`<ellipse {{.Shine}} fill="rgba(255,255,255,0.6)"/>` +
		`{{with .Shape.Grooves}}<path d="{{.D}}" stroke="{{$.Palette.Stroke}}" stroke-width="{{.Width}}"{{if .NoFill}} fill="none"{{end}} opacity="{{.Opacity}}"/>{{end}}` +
		`{{.Marker}}` +
		`</svg>`))

type toothView struct {
	Shape      shape
	Palette    Palette
	GradientID string
	Shadow     string
	Shine      string
	Marker     string
}

// ToothSVG рисует зуб формы kind в статусе status.
// Неизвестная форма рисуется как резец, неизвестный статус - нейтральными цветами без маркера.
func ToothSVG(kind ToothKind, status model.ToothStatus) string {
	s, ok := shapes[kind]
	if !ok {
		kind = KindIncisor
		s = shapes[KindIncisor]
	}

	view := toothView{
		Shape:      s,
		Palette:    PaletteFor(status),
		GradientID: fmt.Sprintf("grad-%s-%s", kind, paletteKey(status)),
		Shadow:     s.Shadow.attrs(),
		Shine:      s.Shine.attrs(),
		Marker:     marker(s, status),
	}

	var sb strings.Builder
	// Все значения шаблона берутся из таблиц пакета, ошибка исполнения невозможна
	_ = toothTemplate.Execute(&sb, view)
	return sb.String()
}

// marker рисует отметку статуса поверх контура
func marker(s shape, status model.ToothStatus) string {
	switch status {
	case model.ToothStatusCavity:
		return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" opacity="0.7"/>`, s.CenterX, centerY, s.CavityR, markerRed)
	case model.ToothStatusFilling:
		return fmt.Sprintf(`<rect %s rx="2" fill="%s" opacity="0.8"/>`, s.Filling, markerYellow)
	case model.ToothStatusCrown:
		return fmt.Sprintf(`<%s %s fill="%s" opacity="0.6"/>`, s.Crown.Tag, s.Crown.Attrs, markerBlue)
	case model.ToothStatusRootCanal:
		return letter(s, "E", markerCyan)
	case model.ToothStatusImplant:
		return letter(s, "I", markerPurple)
	case model.ToothStatusExtraction, model.ToothStatusMissing:
		xy := s.StrikeXYs
		return fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`, xy[0], xy[1], xy[2], xy[3], markerRed)
	default:
		return ""
	}
}

func letter(s shape, glyph, color string) string {
	return fmt.Sprintf(`<text x="%s" y="%s" font-size="%d" fill="%s" text-anchor="middle" font-weight="bold">%s</text>`,
		s.CenterX, letterY, s.LetterPx, color, glyph)
}
