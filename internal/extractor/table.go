// Package extractor turns scraped HTML rate tables into typed documents.
//
// All four data types share one table shape: a row carrying the primary_row
// class starts a new institution or issuer, and every row after it (the
// primary row included) contributes a product and its rates to the current
// entity. Rows seen before any primary row have nothing to attach to and are
// dropped. A malformed cell is never an error, only a missing value; the only
// structural failures are ones that make ID generation impossible.
package extractor

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// rowsXPath selects the body rows of the rates table on every
// interest.co.nz borrowing page.
const rowsXPath = `//table[@id="interest_financial_datatable"]//tbody//tr`

const primaryRowClass = "primary_row"

// tableRows parses the page and returns the data rows in document order.
func tableRows(pageHTML string) ([]*html.Node, error) {
	doc, err := htmlquery.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, errors.Wrap(err, "parsing page HTML")
	}

	rows, err := htmlquery.QueryAll(doc, rowsXPath)
	if err != nil {
		return nil, errors.Wrap(err, "querying table rows")
	}

	return rows, nil
}

func rowCells(row *html.Node) []*html.Node {
	cells, err := htmlquery.QueryAll(row, "./td")
	if err != nil {
		return nil
	}
	return cells
}

func isPrimaryRow(row *html.Node) bool {
	return hasClass(row, primaryRowClass)
}

func hasClass(node *html.Node, class string) bool {
	for _, token := range strings.Fields(htmlquery.SelectAttr(node, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

func cellText(cell *html.Node) string {
	if cell == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(cell))
}

// cellTextAt treats an index beyond the row's actual cell count as an empty
// cell rather than an error.
func cellTextAt(cells []*html.Node, index int) string {
	if index < 0 || index >= len(cells) {
		return ""
	}
	return cellText(cells[index])
}

// entityName reads the institution or issuer display name. Some rows render a
// logo instead of text, so the image alt attribute wins when present.
func entityName(cell *html.Node) string {
	if cell == nil {
		return ""
	}

	if img, err := htmlquery.Query(cell, ".//img"); err == nil && img != nil {
		if alt := strings.TrimSpace(htmlquery.SelectAttr(img, "alt")); alt != "" {
			return alt
		}
	}

	return cellText(cell)
}

func stripLineBreaks(text string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(text)
}
