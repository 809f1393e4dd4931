package catalog

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if spec.Name != "DevOps Maturity MVP" || spec.Version != "1.0" {
		t.Fatalf("unexpected identity: %q %q", spec.Name, spec.Version)
	}
	d, g, q := spec.Counts()
	if d != 5 || g != 20 || q != 40 {
		t.Fatalf("counts: got %d/%d/%d want 5/20/40", d, g, q)
	}

	wantWeights := []float64{0.15, 0.25, 0.25, 0.20, 0.15}
	for i, dom := range spec.Domains {
		if dom.Weight != wantWeights[i] {
			t.Fatalf("domain %d weight: got %v want %v", i, dom.Weight, wantWeights[i])
		}
	}
}

func TestEmbeddedCatalogs(t *testing.T) {
	specs, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	type want struct {
		domains, gates, questions int
		weights                   []float64
	}
	wants := map[string]want{
		"CALMS DevOps Framework": {5, 5, 28, []float64{0.25, 0.25, 0.15, 0.20, 0.15}},
		"DevOps Maturity MVP":    {5, 20, 40, []float64{0.15, 0.25, 0.25, 0.20, 0.15}},
		"DORA Metrics Framework": {5, 5, 25, []float64{0.25, 0.25, 0.20, 0.20, 0.10}},
	}
	if len(specs) != len(wants) {
		t.Fatalf("expected %d built-in catalogs, got %d", len(wants), len(specs))
	}
	for _, spec := range specs {
		w, ok := wants[spec.Name]
		if !ok {
			t.Fatalf("unexpected catalog %q", spec.Name)
		}
		d, g, q := spec.Counts()
		if d != w.domains || g != w.gates || q != w.questions {
			t.Fatalf("%s counts: got %d/%d/%d want %d/%d/%d", spec.Name, d, g, q, w.domains, w.gates, w.questions)
		}
		total := 0.0
		for i, dom := range spec.Domains {
			if dom.Weight != w.weights[i] {
				t.Fatalf("%s domain %q weight: got %v want %v", spec.Name, dom.Name, dom.Weight, w.weights[i])
			}
			total += dom.Weight
		}
		if math.Abs(total-1) > 1e-9 {
			t.Fatalf("%s weights sum to %v", spec.Name, total)
		}
	}
}

func TestDORACatalogShape(t *testing.T) {
	specs, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	var dora *Spec
	for _, s := range specs {
		if s.Name == "DORA Metrics Framework" {
			dora = s
		}
	}
	if dora == nil {
		t.Fatalf("DORA catalog missing")
	}
	perDomain := []int{5, 5, 4, 5, 6}
	for i, d := range dora.Domains {
		if len(d.Gates) != 1 || len(d.Gates[0].Questions) != perDomain[i] {
			t.Fatalf("domain %q: %d gates, want one gate with %d questions", d.Name, len(d.Gates), perDomain[i])
		}
	}
	if dora.Domains[3].Name != "Mean Time to Restore" || dora.Domains[3].Gates[0].Name != "MTTR Assessment" {
		t.Fatalf("domain 4: %q / %q", dora.Domains[3].Name, dora.Domains[3].Gates[0].Name)
	}
}

func TestBuildAssignsOrder(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	fw := spec.Build()
	if len(fw.Domains) != 5 {
		t.Fatalf("domains: %d", len(fw.Domains))
	}
	if fw.Domains[0].Order != 1 || fw.Domains[4].Order != 5 {
		t.Fatalf("domain order: %d..%d", fw.Domains[0].Order, fw.Domains[4].Order)
	}
	g := fw.Domains[1].Gates[3]
	if g.Order != 4 || g.Questions[1].Order != 2 {
		t.Fatalf("gate/question order: %d %d", g.Order, g.Questions[1].Order)
	}
	if fw.Domains[0].Gates[0].Name != "Version Control & Branching" {
		t.Fatalf("first gate: %q", fw.Domains[0].Gates[0].Name)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing name":    "version: \"1\"\ndomains: []\n",
		"missing version": "name: x\n",
		"negative weight": "name: x\nversion: \"1\"\ndomains:\n  - name: d\n    weight: -1\n",
		"blank question":  "name: x\nversion: \"1\"\ndomains:\n  - name: d\n    weight: 1\n    gates:\n      - name: g\n        questions:\n          - text: \"  \"\n",
		"unknown field":   "name: x\nversion: \"1\"\ncolour: red\n",
	}
	for name, doc := range cases {
		if _, err := Load(strings.NewReader(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadPathDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("b.yaml", "name: B\nversion: \"2\"\n")
	write("a.yml", "name: A\nversion: \"1\"\n")
	write("notes.txt", "ignored")

	specs, err := LoadPath(dir)
	if err != nil {
		t.Fatalf("LoadPath: %v", err)
	}
	if len(specs) != 2 || specs[0].Name != "A" || specs[1].Name != "B" {
		t.Fatalf("unexpected specs: %+v", specs)
	}

	single, err := LoadPath(filepath.Join(dir, "b.yaml"))
	if err != nil || len(single) != 1 || single[0].Version != "2" {
		t.Fatalf("single file: %+v %v", single, err)
	}
}
