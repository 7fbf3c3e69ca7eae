package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/odontogram"
	"github.com/Freeeeeet/clinic_bot/internal/render"
	"github.com/Freeeeeet/clinic_bot/internal/week"
)

func main() {
	now := time.Now()
	anchor := week.StartOf(now)

	// Тестовые записи на текущую неделю
	at := func(day, hour, minute int) time.Time {
		return time.Date(anchor.Year(), anchor.Month(), anchor.Day()+day, hour, minute, 0, 0, anchor.Location())
	}
	appointments := []model.Appointment{
		{ID: 1, PatientName: "Ana López", DentistName: "Dra. García", Start: at(0, 9, 0), End: at(0, 10, 0), Reason: "Revisión", Status: model.AppointmentStatusConfirmed},
		{ID: 2, PatientName: "Luis Pérez", DentistName: "Dr. Ruiz", Start: at(1, 10, 30), End: at(1, 11, 0), Reason: "Limpieza", Status: model.AppointmentStatusScheduled},
		{ID: 3, PatientName: "Marta Gil", DentistName: "Dra. García", Start: at(2, 16, 0), End: at(2, 17, 30), Reason: "Endodoncia", Status: model.AppointmentStatusDone},
		{ID: 4, PatientName: "Jorge Sanz", DentistName: "Dr. Ruiz", Start: at(4, 12, 0), End: at(4, 12, 30), Status: model.AppointmentStatusCanceled},
	}

	grid := calendar.BuildStaffGrid(anchor, appointments, now)
	imageData, err := render.WeekImage(grid, render.Options{Subtitle: "Vista de ejemplo", Now: now})
	if err != nil {
		fmt.Printf("Error al generar la imagen: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("semana.png", imageData, 0644); err != nil {
		fmt.Printf("Error al guardar semana.png: %v\n", err)
		os.Exit(1)
	}

	// Одонтограмма со всеми статусами
	chart := model.Odontogram{
		PatientID: 1,
		Teeth:     make(map[string]model.ToothEntry),
		Notes:     "Ejemplo con todos los estados",
	}
	for i, tooth := range odontogram.AllTeeth() {
		if i%4 == 0 {
			chart.Teeth[tooth.ID] = model.ToothEntry{Status: model.ToothStatuses[(i/4)%len(model.ToothStatuses)]}
		}
	}
	doc, err := odontogram.Document(chart, "Odontograma de ejemplo")
	if err != nil {
		fmt.Printf("Error al generar el odontograma: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("odontograma.html", doc, 0644); err != nil {
		fmt.Printf("Error al guardar odontograma.html: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ semana.png y odontograma.html guardados\n")
	fmt.Printf("📅 Semana: %s\n", week.RangeLabel(anchor))
	fmt.Printf("📊 Citas: %d, piezas con estado: %d\n", len(appointments), len(chart.Teeth))
}
