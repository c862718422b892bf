package documents

import (
	"fmt"
	"io"
	"strings"
	"time"

	"etude/internal/config"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 18.0
	lineHeight = 6.0
)

var (
	brandColor = [3]int{28, 54, 93}
	mutedColor = [3]int{110, 110, 110}
)

// Renderer lays out documents under the office letterhead.
type Renderer struct {
	office config.Office
	now    func() time.Time
}

func NewRenderer(office config.Office) *Renderer {
	return &Renderer{office: office, now: time.Now}
}

// page wraps an fpdf document with the cp1252 translator the core fonts
// need for accented characters.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *Renderer) newPage(title string) *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 22)
	pdf.SetTitle(title, true)
	pdf.SetAuthor(r.office.Name, true)
	pdf.SetCreator("etude-api", false)
	pdf.SetCreationDate(r.now())
	pdf.AliasNbPages("{nb}")

	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
		pdf.CellFormat(0, 8, p.tr(r.office.Name), "", 1, "L", false, 0, "")
		if r.office.Address != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(mutedColor[0], mutedColor[1], mutedColor[2])
			pdf.CellFormat(0, 5, p.tr(r.office.Address), "", 1, "L", false, 0, "")
		}
		pdf.SetDrawColor(brandColor[0], brandColor[1], brandColor[2])
		y := pdf.GetY() + 2
		pdf.Line(pageMargin, y, 210-pageMargin, y)
		pdf.SetY(y + 6)
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(mutedColor[0], mutedColor[1], mutedColor[2])
		contact := joinNonEmpty(" - ", r.office.Phone, r.office.Email, r.office.Website)
		pdf.CellFormat(0, 4, p.tr(contact), "", 1, "C", false, 0, "")
		footer := fmt.Sprintf("Document généré le %s - page %d/{nb}", r.now().Format("02/01/2006"), pdf.PageNo())
		pdf.CellFormat(0, 4, p.tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.MultiCell(0, 8, p.tr(title), "", "L", false)
	pdf.Ln(2)
	pdf.SetTextColor(0, 0, 0)
	return p
}

func (p *page) section(title string) {
	p.pdf.Ln(3)
	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.SetFillColor(232, 237, 245)
	p.pdf.CellFormat(0, 8, p.tr(title), "", 1, "L", true, 0, "")
	p.pdf.Ln(1)
	p.pdf.SetFont("Helvetica", "", 10)
}

func (p *page) checkbox(text string) {
	x, y := p.pdf.GetXY()
	p.pdf.Rect(x+1, y+1.5, 3.2, 3.2, "D")
	p.pdf.SetX(x + 7)
	p.pdf.MultiCell(0, lineHeight, p.tr(text), "", "L", false)
}

func (p *page) field(label, value string) {
	p.pdf.SetFont("Helvetica", "B", 10)
	p.pdf.CellFormat(55, lineHeight, p.tr(label), "", 0, "L", false, 0, "")
	p.pdf.SetFont("Helvetica", "", 10)
	if value == "" {
		value = "-"
	}
	p.pdf.MultiCell(0, lineHeight, p.tr(value), "", "L", false)
}

func (p *page) paragraph(text string) {
	p.pdf.SetFont("Helvetica", "", 10)
	p.pdf.MultiCell(0, lineHeight, p.tr(text), "", "L", false)
}

func (p *page) output(w io.Writer) error {
	if err := p.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return p.pdf.Output(w)
}

// Checklist writes the checklist as a PDF with one tick box per item.
func (r *Renderer) Checklist(w io.Writer, c Checklist) error {
	p := r.newPage(c.Title)
	if c.Description != "" {
		p.paragraph(c.Description)
	}
	p.pdf.SetFont("Helvetica", "", 10)
	for _, it := range c.Items {
		if it.Header {
			p.section(it.Text)
			continue
		}
		p.checkbox(it.Text)
	}
	p.pdf.Ln(6)
	p.pdf.SetFont("Helvetica", "I", 9)
	p.pdf.SetTextColor(mutedColor[0], mutedColor[1], mutedColor[2])
	p.pdf.MultiCell(0, 5, p.tr("Cette liste est indicative. L'étude pourra vous demander des pièces complémentaires selon votre situation."), "", "L", false)
	return p.output(w)
}

// Fiche writes a filled "fiche de renseignements". Call Validate first.
func (r *Renderer) Fiche(w io.Writer, in FicheInput) error {
	p := r.newPage("Fiche de renseignements")
	if in.Matter != "" {
		p.field("Objet du dossier", in.Matter)
	}

	p.section("Identité")
	writePerson(p, in.Client)

	p.section("Coordonnées")
	p.field("Adresse", in.Address)
	p.field("Code postal / ville", strings.TrimSpace(in.PostalCode+" "+in.City))
	p.field("Téléphone", in.Phone)
	p.field("Email", in.Email)

	p.section("Situation familiale")
	p.field("Situation", maritalLabels[in.MaritalStatus])
	if in.inUnion() {
		label := "Mariage"
		if in.MaritalStatus == Pacsed {
			label = "PACS"
		}
		p.field("Date du "+strings.ToLower(label), frenchDate(in.UnionDate))
		p.field("Lieu", in.UnionPlace)
		p.field("Régime", regimeLabels[in.Regime])
		if in.Spouse != nil {
			p.section("Conjoint ou partenaire")
			writePerson(p, *in.Spouse)
		}
	}

	if in.Notes != "" {
		p.section("Observations")
		p.paragraph(in.Notes)
	}

	p.pdf.Ln(10)
	p.paragraph("Fait le " + r.now().Format("02/01/2006") + ", signature :")
	return p.output(w)
}

func writePerson(p *page, person Person) {
	p.field("Nom et prénoms", person.fullName())
	p.field("Né(e) le", frenchDate(person.BirthDate))
	p.field("À", person.BirthPlace)
	p.field("Nationalité", person.Nationality)
	p.field("Profession", person.Profession)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, sep)
}
