package catalog

import (
	"fmt"
	"sort"

	"decision-framework-be/internal/entity"
)

// KnowledgeBase holds the validated principle/SOP/value catalogs. It is
// built once at startup and read-only afterwards; every matcher shares it.
type KnowledgeBase struct {
	principles []*entity.Principle
	sops       []*entity.SOP
	values     []*entity.Value

	principleById map[int]*entity.Principle
	sopById       map[int]*entity.SOP
	valueById     map[string]*entity.Value
}

// NewKnowledgeBase validates the catalogs and indexes them. Validation
// failures are fatal configuration errors, reported before any matching runs.
func NewKnowledgeBase(principles []*entity.Principle, sops []*entity.SOP, values []*entity.Value) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		principles:    principles,
		sops:          sops,
		values:        values,
		principleById: make(map[int]*entity.Principle, len(principles)),
		sopById:       make(map[int]*entity.SOP, len(sops)),
		valueById:     make(map[string]*entity.Value, len(values)),
	}

	if err := kb.validate(); err != nil {
		return nil, err
	}

	sort.Slice(kb.principles, func(i, j int) bool { return kb.principles[i].Id < kb.principles[j].Id })
	sort.Slice(kb.sops, func(i, j int) bool { return kb.sops[i].Id < kb.sops[j].Id })
	sort.Slice(kb.values, func(i, j int) bool { return kb.values[i].Priority < kb.values[j].Priority })

	return kb, nil
}

func (kb *KnowledgeBase) Principles() []*entity.Principle { return kb.principles }
func (kb *KnowledgeBase) Sops() []*entity.SOP             { return kb.sops }
func (kb *KnowledgeBase) Values() []*entity.Value         { return kb.values }

func (kb *KnowledgeBase) PrincipleById(id int) (*entity.Principle, error) {
	p, ok := kb.principleById[id]
	if !ok {
		return nil, fmt.Errorf("principle %d not in catalog", id)
	}
	return p, nil
}

func (kb *KnowledgeBase) SopById(id int) (*entity.SOP, error) {
	s, ok := kb.sopById[id]
	if !ok {
		return nil, fmt.Errorf("sop %d not in catalog", id)
	}
	return s, nil
}

func (kb *KnowledgeBase) ValueById(id string) (*entity.Value, error) {
	v, ok := kb.valueById[id]
	if !ok {
		return nil, fmt.Errorf("value %q not in catalog", id)
	}
	return v, nil
}

func (kb *KnowledgeBase) validate() error {
	var issues []string

	for _, p := range kb.principles {
		if p.Id < 1 {
			issues = append(issues, fmt.Sprintf("principle %q: id must be >= 1", p.Title))
		}
		if p.Title == "" {
			issues = append(issues, fmt.Sprintf("principle %d: empty title", p.Id))
		}
		if _, dup := kb.principleById[p.Id]; dup {
			issues = append(issues, fmt.Sprintf("principle %d: duplicate id", p.Id))
			continue
		}
		kb.principleById[p.Id] = p
		for _, tag := range p.Tags {
			if tag == "" {
				issues = append(issues, fmt.Sprintf("principle %d: empty tag", p.Id))
			}
		}
	}

	for _, s := range kb.sops {
		if s.Id < 1 {
			issues = append(issues, fmt.Sprintf("sop %q: id must be >= 1", s.Name))
		}
		if s.Name == "" {
			issues = append(issues, fmt.Sprintf("sop %d: empty name", s.Id))
		}
		if _, dup := kb.sopById[s.Id]; dup {
			issues = append(issues, fmt.Sprintf("sop %d: duplicate id", s.Id))
			continue
		}
		kb.sopById[s.Id] = s
	}

	for _, v := range kb.values {
		if v.Id == "" {
			issues = append(issues, fmt.Sprintf("value %q: empty id", v.Name))
			continue
		}
		if _, dup := kb.valueById[v.Id]; dup {
			issues = append(issues, fmt.Sprintf("value %q: duplicate id", v.Id))
			continue
		}
		kb.valueById[v.Id] = v
	}

	// Cross-reference integrity
	for _, p := range kb.principles {
		for _, sopId := range p.RelatedSopIds {
			if _, ok := kb.sopById[sopId]; !ok {
				issues = append(issues, fmt.Sprintf("principle %d: references missing sop %d", p.Id, sopId))
			}
		}
		for _, valueId := range p.RelatedValueIds {
			if _, ok := kb.valueById[valueId]; !ok {
				issues = append(issues, fmt.Sprintf("principle %d: references missing value %q", p.Id, valueId))
			}
		}
	}
	for _, s := range kb.sops {
		for _, principleId := range s.RelatedPrincipleIds {
			if _, ok := kb.principleById[principleId]; !ok {
				issues = append(issues, fmt.Sprintf("sop %d: references missing principle %d", s.Id, principleId))
			}
		}
	}

	if len(issues) > 0 {
		return &InconsistencyError{Issues: issues}
	}
	return nil
}
