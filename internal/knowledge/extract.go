package knowledge

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF returns the plain text of a PDF, pages separated by blank lines.
func ExtractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

// BlocksFromText chunks text and tags each chunk. Chunks that hit no
// vocabulary keyword are kept as placeholders so the document layout is
// preserved without feeding untagged text to prompts.
func BlocksFromText(source, idPrefix, text string, limit int) []Block {
	var out []Block
	for i, chunk := range Chunk(text, limit) {
		kws := Tag(chunk)
		out = append(out, Block{
			ID:          fmt.Sprintf("%s-%03d", idPrefix, i+1),
			Title:       titleFor(chunk),
			Source:      source,
			Keywords:    kws,
			Text:        chunk,
			Placeholder: len(kws) == 0,
		})
	}
	return out
}

func titleFor(chunk string) string {
	line := chunk
	if i := strings.IndexAny(line, ".\n"); i > 0 {
		line = line[:i]
	}
	return truncateRunes(strings.TrimSpace(line), 80)
}
