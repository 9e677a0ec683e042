package classes

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromHTML returns every token of every class attribute in the document.
func FromHTML(r io.Reader) (*Set, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	set := NewSet()
	doc.Find("[class]").Each(func(_ int, sel *goquery.Selection) {
		value, _ := sel.Attr("class")
		for _, name := range strings.Fields(value) {
			set.Add(name)
		}
	})

	return set, nil
}
