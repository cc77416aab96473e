// Package knowledge holds the keyword-tagged reference blocks used to ground
// prompts, and selects the most relevant of them for a questionnaire.
package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/liftplan-backend/internal/matching"
)

type Block struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Source      string   `yaml:"source,omitempty" json:"source,omitempty"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Text        string   `yaml:"text" json:"text"`
	Placeholder bool     `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// Document is the on-disk YAML shape: one source with many blocks.
type Document struct {
	Source string  `yaml:"source"`
	Blocks []Block `yaml:"blocks"`
}

// Base is an immutable set of blocks. Build a new Base to change it.
type Base struct {
	blocks []Block
}

// NewBase copies blocks, fills missing IDs and sorts by ID.
func NewBase(blocks []Block) *Base {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return &Base{blocks: out}
}

// Blocks returns a copy of the blocks.
func (b *Base) Blocks() []Block {
	if b == nil {
		return nil
	}
	out := make([]Block, len(b.blocks))
	copy(out, b.blocks)
	return out
}

func (b *Base) Len() int {
	if b == nil {
		return 0
	}
	return len(b.blocks)
}

// IsPlaceholder treats blocks with no text as stubs.
func (bl Block) IsPlaceholder() bool {
	return bl.Placeholder || strings.TrimSpace(bl.Text) == ""
}

// ParseDocument decodes one YAML document. name seeds IDs for blocks that
// have none.
func ParseDocument(data []byte, name string) ([]Block, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	out := make([]Block, 0, len(doc.Blocks))
	for i, bl := range doc.Blocks {
		if bl.ID == "" {
			bl.ID = fmt.Sprintf("%s#%03d", name, i+1)
		}
		if bl.Source == "" {
			bl.Source = doc.Source
		}
		bl.Text = strings.TrimSpace(bl.Text)
		for k, kw := range bl.Keywords {
			bl.Keywords[k] = matching.Normalize(kw)
		}
		out = append(out, bl)
	}
	return out, nil
}

// MarshalDocument encodes blocks as a YAML document.
func MarshalDocument(source string, blocks []Block) ([]byte, error) {
	return yaml.Marshal(Document{Source: source, Blocks: blocks})
}
