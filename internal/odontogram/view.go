package odontogram

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// ViewCell - одна клетка схемы
type ViewCell struct {
	Tooth  Tooth
	Status model.ToothStatus
	SVG    template.HTML
}

// Title - подсказка клетки: "Canino superior derecho - Caries"
func (c ViewCell) Title() string {
	return fmt.Sprintf("%s - %s", c.Tooth.Title, c.Status.Label())
}

// CSSClass возвращает класс статуса; неизвестные статусы класса не получают
func (c ViewCell) CSSClass() string {
	if c.Status == model.ToothStatusNone || !c.Status.IsKnown() {
		return "tooth"
	}
	return "tooth " + string(c.Status)
}

type viewQuadrant struct {
	Number int
	Cells  []ViewCell
}

type viewJaw struct {
	Label     string
	Quadrants []viewQuadrant
}

type legendItem struct {
	Status model.ToothStatus
	Label  string
	Color  string
}

type viewData struct {
	Jaws   []viewJaw
	Legend []legendItem
	Notes  string
	Title  string
}

// NewViewCell рисует клетку зуба в заданном статусе
func NewViewCell(t Tooth, status model.ToothStatus) ViewCell {
	// ToothSVG собирается только из таблиц пакета
	return ViewCell{Tooth: t, Status: status, SVG: template.HTML(ToothSVG(t.Kind, status))}
}

func statusOf(chart model.Odontogram, id string) model.ToothStatus {
	if chart.Teeth == nil {
		return model.ToothStatusNone
	}
	return chart.Teeth[id].Status
}

func buildViewData(chart model.Odontogram, title string) viewData {
	data := viewData{Notes: chart.Notes, Title: title}
	for _, jaw := range Layout() {
		vj := viewJaw{Label: jaw.Label}
		for _, q := range jaw.Quadrants {
			vq := viewQuadrant{Number: q.Number}
			for _, t := range q.Teeth {
				vq.Cells = append(vq.Cells, NewViewCell(t, statusOf(chart, t.ID)))
			}
			vj.Quadrants = append(vj.Quadrants, vq)
		}
		data.Jaws = append(data.Jaws, vj)
	}
	for _, s := range model.ToothStatuses {
		data.Legend = append(data.Legend, legendItem{Status: s, Label: s.Label(), Color: PaletteFor(s).Stroke})
	}
	return data
}

const viewMarkup = `{{define "view"}}<div class="odontogram">
{{- range .Jaws}}
<div class="jaw"><h6 class="jaw-label">{{.Label}}</h6><div class="jaw-row">
{{- range .Quadrants}}
<div class="quadrant" data-quadrant="{{.Number}}">
{{- range .Cells}}
<div class="{{.CSSClass}}" data-tooth="{{.Tooth.ID}}" title="{{.Title}}"><div class="tooth-svg">{{.SVG}}</div><span class="tooth-number">{{.Tooth.Short}}</span></div>
{{- end}}
</div>
{{- end}}
</div></div>
{{- end}}
<div class="odontogram-legend">
{{- range .Legend}}
<span class="legend-item {{.Status}}"><span class="legend-color" style="background-color: {{.Color}}"></span>{{.Label}}</span>
{{- end}}
</div>
{{- if .Notes}}
<div class="odontogram-notes"><strong>Notas:</strong> {{.Notes}}</div>
{{- end}}
</div>{{end}}`

const documentMarkup = `{{define "document"}}<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 24px; }
.jaw { margin-bottom: 24px; }
.jaw-row { display: flex; justify-content: center; gap: 24px; }
.quadrant { display: flex; gap: 4px; }
.tooth { display: flex; flex-direction: column; align-items: center; width: 52px; }
.tooth-svg svg { width: 44px; height: 60px; }
.tooth-number { font-size: 12px; color: #495057; }
.odontogram-legend { display: flex; flex-wrap: wrap; gap: 12px; margin-top: 16px; }
.legend-color { display: inline-block; width: 12px; height: 12px; border-radius: 2px; margin-right: 4px; }
.odontogram-notes { margin-top: 16px; white-space: pre-wrap; }
</style>
</head>
<body>
<h4>{{.Title}}</h4>
{{template "view" .}}
</body>
</html>{{end}}`

var viewTemplates = template.Must(template.Must(template.New("odontogram").Parse(viewMarkup)).Parse(documentMarkup))

// RenderView рисует статичную схему одонтограммы: две челюсти, 32 клетки и легенду
func RenderView(chart model.Odontogram) (string, error) {
	var buf bytes.Buffer
	if err := viewTemplates.ExecuteTemplate(&buf, "view", buildViewData(chart, "")); err != nil {
		return "", fmt.Errorf("failed to render odontogram view: %w", err)
	}
	return buf.String(), nil
}

// Document оборачивает схему в отдельную html-страницу
func Document(chart model.Odontogram, title string) ([]byte, error) {
	var buf bytes.Buffer
	if err := viewTemplates.ExecuteTemplate(&buf, "document", buildViewData(chart, title)); err != nil {
		return nil, fmt.Errorf("failed to render odontogram document: %w", err)
	}
	return buf.Bytes(), nil
}
