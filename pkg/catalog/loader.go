package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"decision-framework-be/internal/entity"
)

// InconsistencyError reports catalog validation failures: duplicate ids,
// dangling cross-references, missing required fields. It is fatal at load
// time; the matching core assumes a validated catalog.
type InconsistencyError struct {
	Issues []string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("catalog inconsistency: %s", strings.Join(e.Issues, "; "))
}

type principlesFile struct {
	Principles []*entity.Principle `yaml:"principles"`
}

type sopsFile struct {
	Sops []*entity.SOP `yaml:"sops"`
}

type valuesFile struct {
	Values []*entity.Value `yaml:"values"`
}

// LoadDir reads principles.yaml, sops.yaml and values.yaml from dir,
// validates them and returns the indexed knowledge base. Tags are
// lowercased on load so matchers never have to.
func LoadDir(dir string) (*KnowledgeBase, error) {
	var pf principlesFile
	if err := readYaml(filepath.Join(dir, "principles.yaml"), &pf); err != nil {
		return nil, err
	}

	var sf sopsFile
	if err := readYaml(filepath.Join(dir, "sops.yaml"), &sf); err != nil {
		return nil, err
	}

	var vf valuesFile
	if err := readYaml(filepath.Join(dir, "values.yaml"), &vf); err != nil {
		return nil, err
	}

	for _, p := range pf.Principles {
		for i, tag := range p.Tags {
			p.Tags[i] = strings.ToLower(tag)
		}
	}

	return NewKnowledgeBase(pf.Principles, sf.Sops, vf.Values)
}

func readYaml(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return nil
}
