// Package extract turns saved HTML pages into corpus records: ruby and
// boilerplate markup are stripped, the main article text is distilled, and
// non-Japanese documents are dropped.
package extract

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// Document is one extracted page, ready to become a corpus record.
type Document struct {
	Path  string
	Title string
	Text  string
}

type Extractor struct {
	detector lingua.LanguageDetector
}

// New builds an Extractor. With japaneseOnly set, documents whose detected
// language is not Japanese are rejected.
func New(japaneseOnly bool) *Extractor {
	e := &Extractor{}
	if japaneseOnly {
		e.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Japanese, lingua.Chinese, lingua.Korean, lingua.English).
			Build()
	}
	return e
}

// StripMarkup removes ruby annotations and non-content elements before
// readability runs. Ruby readings (rt) and fallback parentheses (rp) would
// otherwise leak furigana into the extracted text and break tokenization.
func StripMarkup(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("rt, rp, script, style, noscript").Remove()

	cleaned, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML: %w", err)
	}
	return cleaned, nil
}

// ExtractFile reads one HTML file and distills its main text. The boolean is
// false when the document was rejected by the language gate.
func (e *Extractor) ExtractFile(path string) (*Document, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, keep, err := e.Extract(string(raw), "file:///"+filepath.ToSlash(path))
	if err != nil {
		return nil, false, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	if doc != nil {
		doc.Path = path
	}
	return doc, keep, nil
}

// Extract distills the main text of one HTML page.
func (e *Extractor) Extract(html, pageURL string) (*Document, bool, error) {
	cleaned, err := StripMarkup(html)
	if err != nil {
		return nil, false, err
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, false, fmt.Errorf("invalid page URL %s: %w", pageURL, err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(cleaned), u)
	if err != nil {
		return nil, false, fmt.Errorf("readability failed: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, false, nil
	}

	if e.detector != nil {
		lang, ok := e.detector.DetectLanguageOf(text)
		if !ok || lang != lingua.Japanese {
			return nil, false, nil
		}
	}

	return &Document{Title: article.Title, Text: text}, true, nil
}
