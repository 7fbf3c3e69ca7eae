package clinicapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func odontogramPath(patientID int64) string {
	return fmt.Sprintf("/panel/pacientes/%d/odontograma", patientID)
}

// LoadOdontogram загружает последнюю одонтограмму пациента
func (c *Client) LoadOdontogram(ctx context.Context, patientID int64) (model.Odontogram, error) {
	var resp odontogramResponse
	if err := c.do(ctx, http.MethodGet, odontogramPath(patientID), nil, nil, &resp); err != nil {
		return model.Odontogram{}, err
	}
	if resp.Teeth == nil {
		resp.Teeth = make(map[string]model.ToothEntry)
	}
	return model.Odontogram{PatientID: patientID, Teeth: resp.Teeth, Notes: resp.Notes}, nil
}

// SaveOdontogram сохраняет одонтограмму пациента
func (c *Client) SaveOdontogram(ctx context.Context, patientID int64, payload model.OdontogramSave) error {
	if payload.Teeth == nil {
		payload.Teeth = make(map[string]model.ToothEntry)
	}
	var result resultResponse
	if err := c.do(ctx, http.MethodPost, odontogramPath(patientID), nil, payload, &result); err != nil {
		return err
	}
	return checkResult(result)
}
