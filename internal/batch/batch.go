package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stoich/internal/balance"
	"github.com/roach88/stoich/internal/ir"
)

// Batch is a named list of equations to balance.
type Batch struct {
	// Name identifies the batch in reports and golden files.
	Name string `yaml:"name" json:"name"`

	// Factor is the default scale for cases that do not set their own.
	// Zero means 1.
	Factor int64 `yaml:"factor,omitempty" json:"factor,omitempty"`

	Cases []Case `yaml:"equations" json:"equations"`
}

// Case is one equation in a batch.
type Case struct {
	Name     string `yaml:"name" json:"name"`
	Reagents string `yaml:"reagents" json:"reagents"`
	Products string `yaml:"products" json:"products"`

	// Factor overrides Batch.Factor when non-zero.
	Factor int64 `yaml:"factor,omitempty" json:"factor,omitempty"`

	// Expect is optional. If nil, any successful balance passes.
	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expect is the expected outcome of a case: either both rendered sides or an
// error kind.
type Expect struct {
	Reagents string `yaml:"reagents,omitempty" json:"reagents,omitempty"`
	Products string `yaml:"products,omitempty" json:"products,omitempty"`
	Error    string `yaml:"error,omitempty" json:"error,omitempty"`
}

// factor resolves the effective scale of c within b.
func (b *Batch) factor(c Case) int64 {
	if c.Factor != 0 {
		return c.Factor
	}
	if b.Factor != 0 {
		return b.Factor
	}
	return 1
}

// LoadFile reads a batch from path. The format is chosen by extension:
// .yaml and .yml are YAML, .cue is CUE.
func LoadFile(path string) (*Batch, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read batch file: %w", err)
		}
		return LoadYAML(data)
	case ".cue":
		return LoadCUE(path)
	default:
		return nil, fmt.Errorf("unsupported batch file extension %q (want .yaml, .yml or .cue)", ext)
	}
}

// LoadYAML parses a YAML batch. Unknown fields are rejected so that typos
// like "equation:" for "equations:" fail loudly.
func LoadYAML(data []byte) (*Batch, error) {
	var b Batch
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := Validate(&b); err != nil {
		return nil, fmt.Errorf("invalid batch: %w", err)
	}
	return &b, nil
}

// Validate checks required fields and rejects two cases that share an
// equation and resolved factor. Formula grammar and factors are not checked
// here; bad values are reported per case when the batch runs.
func Validate(b *Batch) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(b.Cases) == 0 {
		return fmt.Errorf("equations list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(b.Cases))
	equations := make(map[string]string, len(b.Cases))
	for i, c := range b.Cases {
		if c.Name == "" {
			return fmt.Errorf("equations[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("equations[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true

		if c.Reagents == "" || c.Products == "" {
			return fmt.Errorf("equations[%d]: reagents and products are required", i)
		}

		// History records are keyed by equation ID within a run, so a repeat
		// would be dropped on write.
		id, err := ir.EquationID(c.Reagents, c.Products, b.factor(c))
		if err != nil {
			return fmt.Errorf("equations[%d]: %w", i, err)
		}
		if prev, ok := equations[id]; ok {
			return fmt.Errorf("equations[%d]: same equation and factor as %q", i, prev)
		}
		equations[id] = c.Name

		if c.Expect != nil {
			if err := validateExpect(c.Expect); err != nil {
				return fmt.Errorf("equations[%d].expect: %w", i, err)
			}
		}
	}
	return nil
}

func validateExpect(e *Expect) error {
	hasSides := e.Reagents != "" || e.Products != ""
	switch {
	case e.Error != "" && hasSides:
		return fmt.Errorf("error and reagents/products are mutually exclusive")
	case e.Error != "":
		if !knownKind(balance.Kind(e.Error)) {
			return fmt.Errorf("unknown error kind %q", e.Error)
		}
	case e.Reagents == "" || e.Products == "":
		return fmt.Errorf("both reagents and products are required")
	}
	return nil
}

func knownKind(k balance.Kind) bool {
	switch k {
	case balance.KindInvalidFormulaSyntax,
		balance.KindUnbalancedElements,
		balance.KindNoSolution,
		balance.KindIndeterminate,
		balance.KindInvalidScale,
		balance.KindInternal:
		return true
	}
	return false
}
