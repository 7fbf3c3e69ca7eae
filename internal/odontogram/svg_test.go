package odontogram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func TestToothSVG_AllCombinations(t *testing.T) {
	kinds := []ToothKind{KindIncisor, KindCanine, KindPremolar, KindMolar}
	statuses := append([]model.ToothStatus{model.ToothStatusNone, "desconocido"}, model.ToothStatuses...)

	for _, kind := range kinds {
		for _, status := range statuses {
			svg := ToothSVG(kind, status)
			assert.True(t, strings.HasPrefix(svg, "<svg"), "%s/%s", kind, status)
			assert.True(t, strings.HasSuffix(svg, "</svg>"), "%s/%s", kind, status)
		}
	}
}

func TestToothSVG_PaletteFallback(t *testing.T) {
	svg := ToothSVG(KindMolar, "desconocido")
	assert.Contains(t, svg, `stroke="#ced4da"`)
	assert.Contains(t, svg, "grad-molar-default")
	assert.NotContains(t, svg, "desconocido")

	assert.Equal(t, ToothSVG(KindMolar, model.ToothStatusNone), svg)
}

func TestToothSVG_Markers(t *testing.T) {
	assert.Contains(t, ToothSVG(KindIncisor, model.ToothStatusCavity), `<circle cx="20" cy="30" r="6" fill="#dc3545"`)
	assert.Contains(t, ToothSVG(KindPremolar, model.ToothStatusFilling), `<rect x="16" y="25" width="13" height="10"`)
	assert.Contains(t, ToothSVG(KindCanine, model.ToothStatusCrown), `fill="#0d6efd" opacity="0.6"`)
	assert.Contains(t, ToothSVG(KindMolar, model.ToothStatusRootCanal), `>E</text>`)
	assert.Contains(t, ToothSVG(KindMolar, model.ToothStatusImplant), `>I</text>`)
	assert.Contains(t, ToothSVG(KindMolar, model.ToothStatusExtraction), `<line x1="8" y1="8" x2="42" y2="57"`)
	assert.Contains(t, ToothSVG(KindIncisor, model.ToothStatusMissing), `<line`)
	assert.NotContains(t, ToothSVG(KindIncisor, model.ToothStatusHealthy), `<line`)
}

func TestToothSVG_Grooves(t *testing.T) {
	assert.Contains(t, ToothSVG(KindMolar, model.ToothStatusHealthy), `fill="none" opacity="0.4"`)
	assert.Contains(t, ToothSVG(KindPremolar, model.ToothStatusHealthy), `opacity="0.5"`)
	assert.NotContains(t, ToothSVG(KindIncisor, model.ToothStatusHealthy), `<path`)
}

func TestToothSVG_UnknownKind(t *testing.T) {
	assert.Equal(t, ToothSVG(KindIncisor, model.ToothStatusCavity), ToothSVG("raro", model.ToothStatusCavity))
}
