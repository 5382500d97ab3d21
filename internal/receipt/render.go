package receipt

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-pdf/fpdf"
)

// WriteText renders doc as aligned plain text for a terminal.
func WriteText(w io.Writer, doc Document) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n%s\n\n", doc.Title, strings.Repeat("=", len(doc.Title)))
	for _, row := range doc.Header {
		fmt.Fprintf(tw, "%s:\t%s\n", row.Label, row.Value)
	}
	fmt.Fprintln(tw)
	for _, row := range doc.Details {
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value)
	}
	if len(doc.Roster) > 0 {
		fmt.Fprintf(tw, "\nTeam: %s\n", doc.TeamName)
		fmt.Fprintln(tw, "Name\tGame ID\tGender\tRole")
		for _, p := range doc.Roster {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.GameID, p.Gender, PlayerRole(p))
		}
	}
	if len(doc.Rules) > 0 {
		fmt.Fprintln(tw, "\nEvent Rules")
		for _, rule := range doc.Rules {
			fmt.Fprintf(tw, "  • %s\n", rule)
		}
	}
	return tw.Flush()
}

var htmlTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"role": PlayerRole,
}).Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: Arial, sans-serif; padding: 20px; display: flex; justify-content: center; background-color: #f8fafc; position: relative; }
.print-container { width: 700px; max-width: 100%; background-color: white; padding: 30px; box-shadow: 0 0 10px rgba(0,0,0,0.1); position: relative; z-index: 1; overflow: hidden; }
.watermark { position: absolute; opacity: 0.1; font-size: 80px; color: #3b82f6; z-index: 0; pointer-events: none; white-space: nowrap; top: 50%; left: 50%; transform: translate(-50%, -50%) rotate(-45deg); }
h2, h3 { color: #1e40af; text-align: center; margin: 20px 0 10px; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; table-layout: fixed; }
th, td { border: 1px solid #e2e8f0; padding: 10px; text-align: left; word-wrap: break-word; }
th { background-color: #f1f5f9; color: #1e293b; font-weight: 600; width: 30%; }
@media print { body { padding: 0; } .print-container { box-shadow: none; padding: 0; width: 100%; } }
</style>
</head>
<body onload="window.print()">
<div class="watermark">{{.Doc.Watermark}}</div>
<div class="print-container">
<h2>{{.Doc.Title}}</h2>
{{range .Doc.Header}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{end}}<table>
<tbody>
{{range .Doc.Details}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
{{end}}</tbody>
</table>
{{if .Doc.Roster}}<h3>Team: {{.Doc.TeamName}}</h3>
<table>
<thead><tr><th>Name</th><th>Game ID</th><th>Gender</th><th>Role</th></tr></thead>
<tbody>
{{range .Doc.Roster}}<tr><td>{{.Name}}</td><td>{{.GameID}}</td><td>{{.Gender}}</td><td>{{role .}}</td></tr>
{{end}}</tbody>
</table>
{{end}}{{if .Doc.Rules}}<h3>Event Rules</h3>
<ul>
{{range .Doc.Rules}}<li>{{.}}</li>
{{end}}</ul>
{{end}}</div>
</body>
</html>
`))

// WriteHTML renders doc as a self-printing HTML page.
func WriteHTML(w io.Writer, doc Document) error {
	return htmlTemplate.Execute(w, struct {
		Name string
		Doc  Document
	}{DocumentName, doc})
}

// WritePDF renders doc as an A4 PDF. The core PDF fonts have no rupee
// glyph, so the currency sign is spelled out as "Rs.".
func WritePDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(DocumentName, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(strings.ReplaceAll(s, CurrencySign, "Rs. "))
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right

	pdf.SetFont("Helvetica", "B", 60)
	pdf.SetTextColor(219, 234, 254)
	pdf.TransformBegin()
	pdf.TransformRotate(45, pageW/2, 150)
	pdf.Text(pageW/2-60, 150, doc.Watermark)
	pdf.TransformEnd()

	pdf.SetTextColor(30, 64, 175)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(width, 12, text(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetTextColor(30, 41, 59)
	for _, row := range doc.Header {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, text(row.Label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(width-50, 7, text(row.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetDrawColor(226, 232, 240)
	pdf.SetFillColor(241, 245, 249)
	labelW := width * 0.3
	for _, row := range doc.Details {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelW, 8, text(row.Label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(width-labelW, 8, text(row.Value), "1", 1, "L", false, 0, "")
	}

	if len(doc.Roster) > 0 {
		pdf.Ln(6)
		pdf.SetTextColor(30, 64, 175)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(width, 8, text("Team: "+doc.TeamName), "", 1, "C", false, 0, "")
		pdf.SetTextColor(30, 41, 59)
		colW := width / 4
		pdf.SetFont("Helvetica", "B", 10)
		for _, h := range []string{"Name", "Game ID", "Gender", "Role"} {
			pdf.CellFormat(colW, 8, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range doc.Roster {
			for _, cell := range []string{p.Name, p.GameID, p.Gender, PlayerRole(p)} {
				pdf.CellFormat(colW, 8, text(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if len(doc.Rules) > 0 {
		pdf.Ln(6)
		pdf.SetTextColor(30, 64, 175)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(width, 8, "Event Rules", "", 1, "C", false, 0, "")
		pdf.SetTextColor(30, 41, 59)
		pdf.SetFont("Helvetica", "", 10)
		for _, rule := range doc.Rules {
			pdf.MultiCell(width, 6, text("- "+rule), "", "L", false)
		}
	}

	return pdf.Output(w)
}
