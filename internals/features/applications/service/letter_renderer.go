package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"admissions_backend/internals/constants"
	"admissions_backend/internals/features/applications/model"
	"admissions_backend/internals/helpers/apperr"
	"admissions_backend/internals/helpers/storage"
)

// LetterRenderer produces the admission letter for an approved application and
// returns the storage handle it was written to.
type LetterRenderer interface {
	Render(ctx context.Context, app *model.ApplicationModel) (string, error)
}

type LetterOptions struct {
	Dir            string // key prefix inside the letter store; may be empty
	UniversityName string
	ReportDays     int
}

type PDFLetterRenderer struct {
	store storage.DocumentStore
	opts  LetterOptions
	now   func() time.Time
}

func NewPDFLetterRenderer(store storage.DocumentStore, opts LetterOptions) *PDFLetterRenderer {
	if opts.UniversityName == "" {
		opts.UniversityName = "University Name"
	}
	if opts.ReportDays <= 0 {
		opts.ReportDays = 30
	}
	return &PDFLetterRenderer{store: store, opts: opts, now: time.Now}
}

func LetterFilename(code string) string {
	return "admission_letter_" + code + ".pdf"
}

func (r *PDFLetterRenderer) Render(ctx context.Context, app *model.ApplicationModel) (string, error) {
	body, err := r.Build(app)
	if err != nil {
		return "", apperr.Wrap(apperr.KindRender, "could not render admission letter", err)
	}
	key := storage.ExactKey(r.opts.Dir, LetterFilename(app.ApplicationCode))
	if err := r.store.Put(ctx, key, constants.ContentTypePDF, bytes.NewReader(body)); err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "could not store admission letter", err)
	}
	return key, nil
}

// Build lays out a one-page A4 letter.
func (r *PDFLetterRenderer) Build(app *model.ApplicationModel) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Admission Letter "+app.ApplicationCode, true)
	pdf.SetAuthor(r.opts.UniversityName, true)
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "UNIVERSITY ADMISSION LETTER", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Date: "+r.now().Format("January 02, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Dear %s,", app.FullName())), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "Congratulations! We are pleased to inform you that your application for admission has been APPROVED.", "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Application Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range [][2]string{
		{"Application ID", app.ApplicationCode},
		{"Course", constants.CourseLabel(app.ApplicationCourse)},
		{"Email", app.ApplicationEmail},
		{"Phone", app.ApplicationPhone},
		{"Previous Qualification", app.ApplicationPreviousQualification},
		{"CGPA", app.ApplicationCGPA},
	} {
		pdf.CellFormat(0, 6, tr(line[0]+": "+line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Please report to the admission office within %d days of receiving this letter to complete your enrollment process.",
		r.opts.ReportDays), "", "L", false)
	pdf.Ln(4)
	pdf.CellFormat(0, 6, "Welcome to our university!", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	for _, line := range []string{"Best regards,", "Admissions Committee", r.opts.UniversityName} {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
