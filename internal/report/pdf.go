package report

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

var linkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`) // [text](url)

// PDF renders Markdown as a simple A4 document: headings get a bold font,
// table rows become tab-free lines, links stay clickable. It does not
// attempt full Markdown layout.
func PDF(markdown string, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(4)
			continue
		}
		// Strip heading markers for a basic layout, but add spacing
		if strings.HasPrefix(s, "#") {
			i := 0
			for i < len(s) && s[i] == '#' {
				i++
			}
			text := strings.ReplaceAll(strings.TrimSpace(s[i:]), "\\|", "|")
			if text == "" {
				continue
			}
			size := 16.0
			switch {
			case i == 2:
				size = 13.0
			case i >= 3:
				size = 11.5
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, 7, tr(text), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		if strings.HasPrefix(s, "|") {
			if isTableRule(s) {
				continue
			}
			cells := strings.Split(strings.Trim(s, "|"), "|")
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
			pdf.CellFormat(0, 5, tr(strings.Join(cells, ": ")), "", 1, "L", false, 0, "")
			continue
		}
		if s == "---" {
			pdf.Ln(2)
			continue
		}
		s = strings.NewReplacer("**", "", "\\|", "|").Replace(strings.TrimPrefix(s, "> "))
		parts := linkRe.FindAllStringSubmatchIndex(s, -1)
		if len(parts) == 0 {
			pdf.MultiCell(0, 5, tr(s), "", "L", false)
			continue
		}
		pos := 0
		for _, m := range parts {
			// m: [fullStart, fullEnd, textStart, textEnd, urlStart, urlEnd]
			if m[0] > pos {
				pdf.Write(5, tr(s[pos:m[0]]))
			}
			pdf.WriteLinkString(5, tr(s[m[2]:m[3]]), s[m[4]:m[5]])
			pos = m[1]
		}
		if pos < len(s) {
			pdf.Write(5, tr(s[pos:]))
		}
		pdf.Ln(6)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func isTableRule(s string) bool {
	return strings.Trim(s, "|-: ") == ""
}
