package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentForm_Validate(t *testing.T) {
	start := monday.Add(9 * time.Hour)
	valid := AppointmentForm{PatientID: 1, DentistID: 2, Start: start, End: start.Add(30 * time.Minute)}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		form  AppointmentForm
		field string
	}{
		{"no patient", AppointmentForm{DentistID: 2, Start: start, End: valid.End}, "patient_id"},
		{"no dentist", AppointmentForm{PatientID: 1, Start: start, End: valid.End}, "dentist_id"},
		{"no start", AppointmentForm{PatientID: 1, DentistID: 2, End: valid.End}, "start"},
		{"no end", AppointmentForm{PatientID: 1, DentistID: 2, Start: start}, "end"},
		{"reversed", AppointmentForm{PatientID: 1, DentistID: 2, Start: valid.End, End: start}, "end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			assert.ErrorIs(t, err, ErrValidation)
			var fieldErr *FieldError
			if assert.True(t, errors.As(err, &fieldErr)) {
				assert.Equal(t, tt.field, fieldErr.Field)
			}
		})
	}
}

func TestAppointmentForm_RequestOptionalFields(t *testing.T) {
	start := monday.Add(9 * time.Hour)
	form := AppointmentForm{PatientID: 1, DentistID: 2, Start: start, End: start.Add(30 * time.Minute), RoomID: 5, Chair: "  "}

	req := form.Request()
	if assert.NotNil(t, req.RoomID) {
		assert.Equal(t, int64(5), *req.RoomID)
	}
	assert.Nil(t, req.Chair)
}

func TestRequestForm_Validate(t *testing.T) {
	start := monday.Add(9 * time.Hour)
	assert.ErrorIs(t, RequestForm{Start: start, End: start.Add(time.Hour)}.Validate(), ErrValidation)
	assert.NoError(t, RequestForm{DentistID: 1, Start: start, End: start.Add(time.Hour)}.Validate())
}
