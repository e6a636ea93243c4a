package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arabia-tkd/admin-api/internal/models"
)

// Evaluation renders the graduation-request sheet, a dense replica of the
// school's paper form. Derived fields (age, joined address, guardian phone)
// come from the student record; a nil student leaves them blank.
func (r *Renderer) Evaluation(event models.Event, student *models.Student) ([]byte, error) {
	pdf, tr := newA4()
	pdf.AddPage()

	margin := 40.0
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	pdf.SetDrawColor(26, 26, 26)
	pdf.SetLineWidth(1.5)
	pdf.Rect(margin, margin, pageWidth-2*margin, pageHeight-2*margin, "D")

	pdf.SetTextColor(26, 26, 26)

	y := 60.0
	pdf.SetFont("Helvetica", "B", 16)
	centeredText(pdf, y, tr("ESCUELA DE TAEKWON-DO ARABIA TKD"))
	y += 20

	pdf.SetFont("Helvetica", "", 10)
	centeredText(pdf, y, tr("Afiliada a la Federación Argentina de Asociaciones de Taekwon-do"))
	y += 25

	pdf.SetFont("Helvetica", "B", 14)
	centeredText(pdf, y, tr("Solicitud de graduación"))
	y += 25

	pdf.SetFont("Helvetica", "", 10)
	rightText(pdf, pageWidth-margin-20, y, tr("Fecha: "+event.Date))
	y += 25

	var fullName, birthStr, ageStr, gender, address, phone, nationality, dni string
	if student != nil {
		fullName = student.FullName
		gender = student.Gender
		dni = student.DNI
		nationality = student.Nationality
		address = joinNonEmpty(" - ", student.Address, student.City, student.Province, student.Country)
		phone = firstNonEmpty(student.FatherPhone, student.MotherPhone)
		if student.Birthdate != nil {
			birthStr = student.Birthdate.Format("02/01/2006")
			ageStr = fmt.Sprintf("%d", WholeYears(*student.Birthdate, r.now()))
		}
	}

	x1 := margin + 10
	x2 := margin + 110

	labelValue := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(x1, y, tr(label))
		pdf.Text(x2, y, tr(value))
	}

	labelValue("Apellido y Nombre:", fullName)
	y += 18
	labelValue("Fecha de Nacimiento:", birthStr)
	pdf.Text(x2+80, y, tr("Edad: "+ageStr))
	pdf.Text(x2+160, y, tr("Sexo: "+gender))
	y += 18

	labelValue("Domicilio:", address)
	y += 18
	labelValue("Teléfono:", phone)
	pdf.Text(x2+130, y, tr("Nacionalidad: "+nationality))
	pdf.Text(x2+250, y, tr("D.N.I: "+dni))
	y += 18

	labelValue("Ocupación:", "")
	pdf.Text(x2+250, y, tr("Estado civil:"))
	y += 22

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x1, y, tr("Solicita Grad.:"))
	pdf.Text(x1+90, y, "________________")
	pdf.Text(x1+220, y, tr("Actual graduación:"))
	pdf.Text(x1+360, y, tr("Tiempo de práctica:"))
	y += 18

	labelValue("Escuela base:", "INSTITUTO MONTEROS DE TAEKWONDO")
	y += 28

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(x1, y, "INSTRUCTORES")
	pdf.Text(x1+220, y, tr("Instructores auxiliares"))
	y += 14

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x1, y, tr("- Arabia, Sirio Facundo. IV DAN"))
	pdf.Text(x1+220, y, tr("- Cornejo, Tomás Felipe. III DAN"))
	y += 14
	pdf.Text(x1, y, tr("- Arabia, Farid Ignacio. IV DAN"))
	pdf.Text(x1+220, y, tr("- Monteros, María de los Angeles. III DAN"))
	y += 14
	pdf.Text(x1, y, tr("- Arabia, Salma Sofia. II DAN"))
	y += 24

	rubric := []string{
		"Formas Básicas: ____________________   Téc. Patadas: ____________________",
		"Sambo Matsoki: ____________________   Bolsa: ____________________",
		"Ibo Matsoki:   ____________________   Bolsa: ____________________",
		"Ilbo Matsoki:  ____________________   Bolsa: ____________________",
		"Tul:           ____________________   Bolsa: ____________________",
	}
	for _, line := range rubric {
		pdf.Text(x1, y, tr(line))
		y += 14
	}
	y += 4

	pdf.Text(x1, y, "Matsoki: _____________________________________________________________")
	y += 14
	pdf.Text(x1, y, "Defensa Personal: ____________________________________________________")
	y += 22

	pdf.Text(x1, y, tr("Postura: __________  Vista: __________  Concentración: __________"))
	y += 14
	pdf.Text(x1, y, tr("Respiración: ______  Equilibrio: ______  Flexibilidad: ______"))
	y += 14
	pdf.Text(x1, y, "Velocidad: ________  Fuerza: ________  Agilidad: ________")
	y += 14
	pdf.Text(x1, y, tr("Potencia: _________  Relajación: _________"))
	y += 18

	pdf.Text(x1, y, "Conocimiento en Oral: _______________________________________________")
	y += 14
	pdf.Text(x1, y, tr("Disciplina: _______________    Teoría: ______________________________"))
	y += 18

	pdf.Text(x1, y, "Observaciones: _________________________________________________")
	y += 28

	pdf.Text(x1, y, "Evaluador:")
	y += 45
	pdf.Line(x1, y, x1+200, y)
	pdf.Text(x1, y+14, "Nombre y Firma")

	pdf.SetFont("Helvetica", "I", 10)
	centeredText(pdf, pageHeight-margin-20, tr(masterQuote))

	embedImage(pdf, r.assets.LogoPath, pageWidth-margin-60, margin, 60, 60)
	embedImage(pdf, r.assets.SecondaryLogoPath, pageWidth-margin-90, 90, 80, 80)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render evaluation pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
