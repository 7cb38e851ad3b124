package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadDir(t *testing.T) {
	kb, err := LoadDir("testdata/valid")
	if err != nil {
		t.Fatalf("LoadDir error = %v", err)
	}

	if len(kb.Principles()) != 2 || len(kb.Sops()) != 1 || len(kb.Values()) != 1 {
		t.Fatalf("loaded %d principles, %d sops, %d values",
			len(kb.Principles()), len(kb.Sops()), len(kb.Values()))
	}

	p, err := kb.PrincipleById(1)
	if err != nil {
		t.Fatalf("PrincipleById(1) error = %v", err)
	}
	// Tags are lowercased on load.
	for _, tag := range p.Tags {
		if tag != strings.ToLower(tag) {
			t.Errorf("tag %q not lowercased", tag)
		}
	}
	if len(p.SubPrinciples) != 1 || p.SubPrinciples[0].Id != "1a" {
		t.Errorf("SubPrinciples = %v", p.SubPrinciples)
	}
	if len(p.SubPrinciples[0].SubItems) != 1 {
		t.Errorf("SubItems = %v", p.SubPrinciples[0].SubItems)
	}

	s, err := kb.SopById(1)
	if err != nil {
		t.Fatalf("SopById(1) error = %v", err)
	}
	if len(s.Triggers) != 1 || len(s.Triggers[0].Stakes) != 2 {
		t.Errorf("Triggers = %+v", s.Triggers)
	}
	if s.Triggers[0].KeywordOnly() {
		t.Error("trigger with stakes reported as keyword-only")
	}
	if len(s.Steps) != 2 || !s.Steps[1].IsOptional {
		t.Errorf("Steps = %+v", s.Steps)
	}
}

func TestLoadDirMissingFile(t *testing.T) {
	_, err := LoadDir("testdata/does-not-exist")
	if err == nil {
		t.Fatal("error = nil, want read failure")
	}
}

func TestLoadDirInconsistentCatalog(t *testing.T) {
	_, err := LoadDir("testdata/inconsistent")
	if err == nil {
		t.Fatal("error = nil, want InconsistencyError")
	}

	var ie *InconsistencyError
	if !errors.As(err, &ie) {
		t.Fatalf("error type = %T, want *InconsistencyError", err)
	}
	if !strings.Contains(err.Error(), "missing sop 99") {
		t.Errorf("error = %q, want dangling reference report", err.Error())
	}
}
