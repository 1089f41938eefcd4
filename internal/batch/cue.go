package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadCUE loads a batch from a single CUE file. The file may constrain its
// own values; it must evaluate to concrete data.
//
// Cases come from the "equations" list followed by the fields of the
// "equation" struct, in declaration order. A field's label is the case name.
func LoadCUE(path string) (*Batch, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: filepath.Dir(path)}
	instances := load.Instances([]string{filepath.Base(path)}, cfg)
	if len(instances) == 0 {
		return nil, fmt.Errorf("loading CUE file: no instances loaded")
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE file: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating CUE value: %w", err)
	}

	b, err := decodeBatch(value)
	if err != nil {
		return nil, err
	}
	if err := Validate(b); err != nil {
		return nil, fmt.Errorf("invalid batch: %w", err)
	}
	return b, nil
}

func decodeBatch(v cue.Value) (*Batch, error) {
	b := &Batch{}

	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, fmt.Errorf("name: %w", err)
		}
		b.Name = name
	}

	if factorVal := v.LookupPath(cue.ParsePath("factor")); factorVal.Exists() {
		factor, err := factorVal.Int64()
		if err != nil {
			return nil, fmt.Errorf("factor: %w", err)
		}
		b.Factor = factor
	}

	if listVal := v.LookupPath(cue.ParsePath("equations")); listVal.Exists() {
		if err := listVal.Decode(&b.Cases); err != nil {
			return nil, fmt.Errorf("equations: %w", err)
		}
	}

	structVal := v.LookupPath(cue.ParsePath("equation"))
	if structVal.Exists() {
		iter, err := structVal.Fields()
		if err != nil {
			return nil, fmt.Errorf("iterating equation: %w", err)
		}
		for iter.Next() {
			var c Case
			if err := iter.Value().Decode(&c); err != nil {
				return nil, fmt.Errorf("equation.%s: %w", iter.Label(), err)
			}
			if c.Name == "" {
				c.Name = iter.Label()
			}
			b.Cases = append(b.Cases, c)
		}
	}

	return b, nil
}
