package catalog

import (
	"errors"
	"strings"
	"testing"

	"decision-framework-be/internal/entity"
)

func validCatalog() ([]*entity.Principle, []*entity.SOP, []*entity.Value) {
	principles := []*entity.Principle{
		{Id: 2, Title: "Second", Tags: []string{"beta"}, RelatedSopIds: []int{1}, RelatedValueIds: []string{"clarity"}},
		{Id: 1, Title: "First", Tags: []string{"alpha"}},
	}
	sops := []*entity.SOP{
		{Id: 1, Name: "Pause", RelatedPrincipleIds: []int{1, 2}},
	}
	values := []*entity.Value{
		{Id: "clarity", Name: "Clarity", Priority: 2},
		{Id: "integrity", Name: "Integrity", Priority: 1},
	}
	return principles, sops, values
}

func TestNewKnowledgeBaseIndexesAndSorts(t *testing.T) {
	kb, err := NewKnowledgeBase(validCatalog())
	if err != nil {
		t.Fatalf("NewKnowledgeBase error = %v", err)
	}

	if kb.Principles()[0].Id != 1 || kb.Principles()[1].Id != 2 {
		t.Error("principles not sorted by id")
	}
	if kb.Values()[0].Id != "integrity" {
		t.Error("values not sorted by priority")
	}

	p, err := kb.PrincipleById(2)
	if err != nil || p.Title != "Second" {
		t.Errorf("PrincipleById(2) = %v, %v", p, err)
	}
	if _, err := kb.PrincipleById(99); err == nil {
		t.Error("PrincipleById(99) = nil error, want miss")
	}
	if _, err := kb.SopById(1); err != nil {
		t.Errorf("SopById(1) error = %v", err)
	}
	if _, err := kb.ValueById("missing"); err == nil {
		t.Error("ValueById(missing) = nil error, want miss")
	}
}

func TestNewKnowledgeBaseValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value)
		wantIssue string
	}{
		{
			name:      "duplicate principle id",
			mutate:    func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value) { p[1].Id = 2 },
			wantIssue: "duplicate id",
		},
		{
			name:      "principle id below one",
			mutate:    func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value) { p[0].Id = 0 },
			wantIssue: "id must be >= 1",
		},
		{
			name:      "empty title",
			mutate:    func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value) { p[0].Title = "" },
			wantIssue: "empty title",
		},
		{
			name:      "empty tag",
			mutate:    func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value) { p[0].Tags = []string{""} },
			wantIssue: "empty tag",
		},
		{
			name:      "dangling sop reference",
			mutate:    func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value) { p[0].RelatedSopIds = []int{42} },
			wantIssue: "missing sop 42",
		},
		{
			name: "dangling value reference",
			mutate: func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value) {
				p[0].RelatedValueIds = []string{"nope"}
			},
			wantIssue: `missing value "nope"`,
		},
		{
			name:      "dangling principle reference",
			mutate:    func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value) { s[0].RelatedPrincipleIds = []int{9} },
			wantIssue: "missing principle 9",
		},
		{
			name:      "empty value id",
			mutate:    func(p []*entity.Principle, s []*entity.SOP, v []*entity.Value) { v[0].Id = "" },
			wantIssue: "empty id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principles, sops, values := validCatalog()
			tt.mutate(principles, sops, values)

			_, err := NewKnowledgeBase(principles, sops, values)
			if err == nil {
				t.Fatal("error = nil, want InconsistencyError")
			}

			var ie *InconsistencyError
			if !errors.As(err, &ie) {
				t.Fatalf("error type = %T, want *InconsistencyError", err)
			}
			if !strings.Contains(err.Error(), tt.wantIssue) {
				t.Errorf("error = %q, want mention of %q", err.Error(), tt.wantIssue)
			}
		})
	}
}

func TestNewKnowledgeBaseCollectsAllIssues(t *testing.T) {
	principles, sops, values := validCatalog()
	principles[0].Title = ""
	principles[1].RelatedSopIds = []int{42}

	_, err := NewKnowledgeBase(principles, sops, values)
	var ie *InconsistencyError
	if !errors.As(err, &ie) {
		t.Fatalf("error type = %T, want *InconsistencyError", err)
	}
	if len(ie.Issues) < 2 {
		t.Errorf("Issues = %v, want every problem reported at once", ie.Issues)
	}
}
