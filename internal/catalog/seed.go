package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	domaincatalog "github.com/yungbote/maturity-backend/internal/domain/catalog"
)

//go:embed catalogs/*.yaml
var embedded embed.FS

const DefaultCatalogFile = "catalogs/devops_mvp.yaml"

// Spec is the on-disk shape of a framework catalog.
type Spec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Version     string       `yaml:"version"`
	Domains     []DomainSpec `yaml:"domains"`
}

type DomainSpec struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Weight      float64    `yaml:"weight"`
	Gates       []GateSpec `yaml:"gates"`
}

type GateSpec struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Questions   []QuestionSpec `yaml:"questions"`
}

type QuestionSpec struct {
	Text     string `yaml:"text"`
	Guidance string `yaml:"guidance"`
}

func Load(r io.Reader) (*Spec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	spec, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// LoadDir loads every *.yaml / *.yml file in dir, sorted by file name.
func LoadDir(dir string) ([]*Spec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	out := make([]*Spec, 0, len(names))
	for _, n := range names {
		spec, err := LoadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// LoadPath accepts either a single catalog file or a directory of them.
func LoadPath(path string) ([]*Spec, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat catalog path %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	spec, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []*Spec{spec}, nil
}

// Embedded loads every built-in catalog, sorted by file name.
func Embedded() ([]*Spec, error) {
	entries, err := fs.ReadDir(embedded, "catalogs")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalogs: %w", err)
	}
	out := make([]*Spec, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := "catalogs/" + e.Name()
		raw, err := embedded.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read embedded catalog %s: %w", name, err)
		}
		spec, err := Load(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, spec)
	}
	return out, nil
}

// Default returns the built-in DevOps Maturity MVP catalog.
func Default() (*Spec, error) {
	raw, err := embedded.ReadFile(DefaultCatalogFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return Load(bytes.NewReader(raw))
}

func (s *Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("catalog: name is required")
	}
	if strings.TrimSpace(s.Version) == "" {
		return fmt.Errorf("catalog %q: version is required", s.Name)
	}
	for di, d := range s.Domains {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("catalog %q: domain %d has no name", s.Name, di)
		}
		if d.Weight < 0 || math.IsNaN(d.Weight) || math.IsInf(d.Weight, 0) {
			return fmt.Errorf("catalog %q: domain %q has invalid weight %v", s.Name, d.Name, d.Weight)
		}
		for gi, g := range d.Gates {
			if strings.TrimSpace(g.Name) == "" {
				return fmt.Errorf("catalog %q: domain %q gate %d has no name", s.Name, d.Name, gi)
			}
			for qi, q := range g.Questions {
				if strings.TrimSpace(q.Text) == "" {
					return fmt.Errorf("catalog %q: gate %q question %d has no text", s.Name, g.Name, qi)
				}
			}
		}
	}
	return nil
}

// Build turns the spec into an unsaved framework tree. Display order follows
// file order starting at 1.
func (s *Spec) Build() *domaincatalog.Framework {
	fw := &domaincatalog.Framework{
		Name:        strings.TrimSpace(s.Name),
		Description: strings.TrimSpace(s.Description),
		Version:     strings.TrimSpace(s.Version),
	}
	for di, d := range s.Domains {
		dom := domaincatalog.Domain{
			Name:        strings.TrimSpace(d.Name),
			Description: strings.TrimSpace(d.Description),
			Weight:      d.Weight,
			Order:       di + 1,
		}
		for gi, g := range d.Gates {
			gate := domaincatalog.Gate{
				Name:        strings.TrimSpace(g.Name),
				Description: strings.TrimSpace(g.Description),
				Order:       gi + 1,
			}
			for qi, q := range g.Questions {
				gate.Questions = append(gate.Questions, domaincatalog.Question{
					Text:     strings.TrimSpace(q.Text),
					Guidance: strings.TrimSpace(q.Guidance),
					Order:    qi + 1,
				})
			}
			dom.Gates = append(dom.Gates, gate)
		}
		fw.Domains = append(fw.Domains, dom)
	}
	return fw
}

// Counts returns the number of domains, gates and questions.
func (s *Spec) Counts() (domains, gates, questions int) {
	for _, d := range s.Domains {
		domains++
		for _, g := range d.Gates {
			gates++
			questions += len(g.Questions)
		}
	}
	return
}
