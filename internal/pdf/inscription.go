package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arabia-tkd/admin-api/internal/models"
)

// Inscription renders the single-page exam inscription sheet. The student is
// optional; when nil the sheet carries no student line at all.
func (r *Renderer) Inscription(event models.Event, student *models.Student) ([]byte, error) {
	pdf, tr := newA4()
	pdf.AddPage()

	// Martial-style black background with a white frame.
	pdf.SetFillColor(0, 0, 0)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	margin := 40.0
	pdf.SetDrawColor(255, 255, 255)
	pdf.Rect(margin, margin, pageWidth-2*margin, pageHeight-2*margin, "D")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	centeredText(pdf, 80, tr("ESCUELA DE TAEKWONDO - ARABIA TKD"))

	pdf.SetFont("Helvetica", "", 14)
	centeredText(pdf, 110, tr("Ficha de Inscripción a Examen"))

	y := 160.0
	lineSpacing := 24.0

	drawField := func(label, value string, labelX, valueX float64) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(labelX, y, tr(label))
		pdf.SetFont("Helvetica", "", 11)
		pdf.Text(valueX, y, tr(value))
		y += lineSpacing
	}

	if student != nil {
		drawField("Alumno:", student.FullName, margin+30, margin+120)
	}
	drawField("Fecha de examen:", strings.TrimSpace(event.Date+" "+event.Time), margin+30, margin+150)
	drawField("Tipo / Graduación:", event.Level, margin+30, margin+165)
	drawField("Lugar:", event.Place, margin+30, margin+90)

	if notes := strings.TrimSpace(event.Notes); notes != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(margin+30, y, tr("Notas / Observaciones:"))
		y += 18
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range wrapLines(notes, 90) {
			pdf.Text(margin+40, y, tr(line))
			y += 14
		}
	}

	pdf.SetFont("Helvetica", "BI", 14)
	centeredText(pdf, pageHeight/2, tr(masterQuote))

	embedImage(pdf, r.assets.LogoPath, pageWidth/2-60, 200, 120, 120)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render inscription pdf: %w", err)
	}
	return buf.Bytes(), nil
}
