package odontogram

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

type fakeSaver struct {
	err      error
	saved    []model.OdontogramSave
	patients []int64
	during   func() // вызывается, пока запрос «в пути»
}

func (f *fakeSaver) SaveOdontogram(_ context.Context, patientID int64, payload model.OdontogramSave) error {
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return f.err
	}
	f.patients = append(f.patients, patientID)
	f.saved = append(f.saved, payload)
	return nil
}

func TestEditor_PayloadOnlyStatusBearing(t *testing.T) {
	saver := &fakeSaver{}
	ed := NewEditor(model.Odontogram{PatientID: 7}, saver, nil)

	_, err := ed.Select("1.1")
	require.NoError(t, err)
	_, err = ed.SetStatus(model.ToothStatusCavity)
	require.NoError(t, err)

	_, err = ed.Select("2.2")
	require.NoError(t, err)
	_, err = ed.SetStatus(model.ToothStatusFilling)
	require.NoError(t, err)
	_, err = ed.SetStatus(model.ToothStatusNone)
	require.NoError(t, err)

	body, err := json.Marshal(ed.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"piezas":{"1.1":{"estado":"caries"}},"notas":""}`, string(body))

	require.NoError(t, ed.Save(context.Background()))
	assert.Equal(t, []int64{7}, saver.patients)
	assert.False(t, ed.Dirty())
}

func TestEditor_SetStatusRequiresSelection(t *testing.T) {
	ed := NewEditor(model.Odontogram{}, &fakeSaver{}, nil)

	_, err := ed.SetStatus(model.ToothStatusCrown)
	assert.ErrorIs(t, err, ErrNoToothSelected)

	_, err = ed.Select("9.9")
	assert.ErrorIs(t, err, ErrUnknownTooth)

	_, err = ed.Select("3.4")
	require.NoError(t, err)
	_, err = ed.SetStatus("roto")
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.False(t, ed.Dirty())
}

func TestEditor_SetStatusRerendersCell(t *testing.T) {
	ed := NewEditor(model.Odontogram{}, &fakeSaver{}, nil)
	_, err := ed.Select("4.6")
	require.NoError(t, err)

	cell, err := ed.SetStatus(model.ToothStatusImplant)
	require.NoError(t, err)
	assert.Equal(t, "4.6", cell.Tooth.ID)
	assert.Equal(t, "Primer molar inferior derecho - Implante", cell.Title())
	assert.Contains(t, string(cell.SVG), ">I</text>")

	info, ok := ed.Info()
	require.True(t, ok)
	assert.Equal(t, "Pieza: 4.6 - Primer molar inferior derecho\nEstado actual: Implante", info.Text())
}

func TestEditor_LoadsExistingChart(t *testing.T) {
	ed := NewEditor(model.Odontogram{
		PatientID: 3,
		Teeth: map[string]model.ToothEntry{
			"1.6": {Status: model.ToothStatusCrown},
			"2.1": {},
			"7.7": {Status: model.ToothStatusCavity},
		},
		Notes: "Revisar",
	}, &fakeSaver{}, nil)

	assert.Equal(t, model.ToothStatusCrown, ed.Status("1.6"))
	assert.Equal(t, model.ToothStatus(""), ed.Status("2.1"))
	assert.Len(t, ed.Payload().Teeth, 1)
	assert.Equal(t, "Revisar", ed.Notes())
	assert.False(t, ed.Dirty())

	ed.SetNotes("Revisar")
	assert.False(t, ed.Dirty())
	ed.SetNotes("Control en 6 meses")
	assert.True(t, ed.Dirty())
}

func TestEditor_SaveFailureKeepsChanges(t *testing.T) {
	serverErr := errors.New("boom")
	ed := NewEditor(model.Odontogram{PatientID: 1}, &fakeSaver{err: serverErr}, nil)
	_, err := ed.Select("1.1")
	require.NoError(t, err)
	_, err = ed.SetStatus(model.ToothStatusHealthy)
	require.NoError(t, err)

	assert.ErrorIs(t, ed.Save(context.Background()), serverErr)
	assert.True(t, ed.Dirty())
	assert.Equal(t, model.ToothStatusHealthy, ed.Status("1.1"))
}

func TestEditor_EditDuringSaveStaysDirty(t *testing.T) {
	saver := &fakeSaver{}
	ed := NewEditor(model.Odontogram{PatientID: 5}, saver, nil)
	_, err := ed.Select("1.1")
	require.NoError(t, err)
	_, err = ed.SetStatus(model.ToothStatusCavity)
	require.NoError(t, err)

	saver.during = func() {
		_, err := ed.Select("2.1")
		require.NoError(t, err)
		_, err = ed.SetStatus(model.ToothStatusCrown)
		require.NoError(t, err)
	}
	require.NoError(t, ed.Save(context.Background()))

	require.Len(t, saver.saved, 1)
	assert.NotContains(t, saver.saved[0].Teeth, "2.1")
	assert.True(t, ed.Dirty())

	saver.during = nil
	require.NoError(t, ed.Save(context.Background()))
	assert.Contains(t, saver.saved[1].Teeth, "2.1")
	assert.False(t, ed.Dirty())
}
