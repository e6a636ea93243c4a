package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"github.com/arabia-tkd/admin-api/internal/models"
)

// Rinde renders the multi-student exam sheet: one page per student, each a
// text overlay composited onto page 1 of the fixed background template.
func (r *Renderer) Rinde(event models.Event, students []models.Student) (out []byte, err error) {
	if _, statErr := os.Stat(r.assets.RindeTemplatePath); statErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, r.assets.RindeTemplatePath)
	}

	// gofpdi panics on templates it cannot parse; surface that as an error.
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("import rinde template: %v", rec)
		}
	}()

	pdf, tr := newA4()
	importer := gofpdi.NewImporter()
	tpl := importer.ImportPage(pdf, r.assets.RindeTemplatePath, 1, "/MediaBox")

	examDate := r.examDate(event)

	for _, student := range students {
		pdf.AddPage()
		importer.UseImportedTemplate(pdf, tpl, 0, 0, pageWidth, pageHeight)

		fields := r.rindeFields(student, event, examDate)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 11)
		for name, value := range fields {
			anchor, ok := rindeLayout[name]
			if !ok || value == "" {
				continue
			}
			x, y := anchor.Point(pageWidth, pageHeight)
			pdf.Text(x, y, tr(value))
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render rinde pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// examDate parses the event's date, falling back to the current day when the
// stored string is not a calendar date (lenient by contract).
func (r *Renderer) examDate(event models.Event) time.Time {
	if d, err := time.Parse("2006-01-02", event.Date); err == nil {
		return d
	}
	return r.now()
}

func (r *Renderer) rindeFields(student models.Student, event models.Event, examDate time.Time) map[string]string {
	fields := map[string]string{
		"name":      student.DisplayName(),
		"dni":       student.DNI,
		"school":    student.School,
		"exam_date": event.Date,
	}

	if student.Birthdate != nil {
		fields["birthdate"] = student.Birthdate.Format("02/01/2006")
		years, months := YearsMonths(*student.Birthdate, examDate)
		fields["age"] = fmt.Sprintf("%d años %d meses", years, months)
	}

	if cur, next, ok := BeltLookup(student.Belt); ok {
		fields["current_belt"] = cur.Belt
		fields["current_grade"] = cur.Grade
		fields["target_belt"] = next.Belt
		fields["target_grade"] = next.Grade
	}

	return fields
}
