package entity

import "strings"

// SubPrinciple is a lettered sub-point within a principle.
type SubPrinciple struct {
	Id       string   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	SubItems []string `json:"sub_items,omitempty" yaml:"sub_items,omitempty"`
}

// Principle is a persistent guideline used to evaluate situations.
// The catalog is loaded once at startup and is read-only afterwards;
// matchers must never mutate it.
type Principle struct {
	Id              int            `json:"id" yaml:"id"`
	Title           string         `json:"title" yaml:"title"`
	SubPrinciples   []SubPrinciple `json:"sub_principles,omitempty" yaml:"sub_principles,omitempty"`
	RelatedSopIds   []int          `json:"related_sop_ids,omitempty" yaml:"related_sop_ids,omitempty"`
	RelatedValueIds []string       `json:"related_value_ids,omitempty" yaml:"related_value_ids,omitempty"`
	Categories      []string       `json:"categories,omitempty" yaml:"categories,omitempty"`
	Tags            []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// EmbeddingText builds the canonical text used to embed this principle.
// Changing the title or tags changes this text, which in turn changes the
// embedding cache key for the principle.
func (p *Principle) EmbeddingText() string {
	return p.Title + ". Keywords: " + strings.Join(p.Tags, ", ")
}

func (p *Principle) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range p.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}
