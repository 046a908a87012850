// Package parser extracts the compared page fields and normalises sheet values.
package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/titlecheck/models"
)

// trimSet is stripped from both ends of every compared value.
const trimSet = " \t\n\r"

// PageFields holds the text the checker compares for one page.
type PageFields struct {
	Title string
	H1    string
}

// ExtractPage returns the text of the first <title> and the first <h1> of an
// HTML document. Entities are decoded by the tokenizer and text of nested
// inline elements inside the heading is concatenated. Missing elements yield
// empty strings.
func ExtractPage(html string) PageFields {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageFields{}
	}

	return PageFields{
		Title: firstText(doc, "title"),
		H1:    firstText(doc, "h1"),
	}
}

func firstText(doc *goquery.Document, tag string) string {
	sel := doc.Find(tag).First()
	if sel.Length() == 0 {
		return ""
	}
	return Normalize(sel.Text())
}

// Normalize trims spaces, tabs, newlines and carriage returns.
func Normalize(text string) string {
	return strings.Trim(text, trimSet)
}

// ValidateRecord ensures a loaded row carries a URL to check.
func ValidateRecord(r *models.ExpectedRecord) error {
	if r == nil {
		return fmt.Errorf("record is nil")
	}
	if r.URL == "" {
		return fmt.Errorf("row %d: missing url", r.Row)
	}
	return nil
}
