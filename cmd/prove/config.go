package prove

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/inpefess/vampire/internal/parser"
	"github.com/inpefess/vampire/pkg/kernel"
	"github.com/inpefess/vampire/pkg/saturation"
)

// loadStrategy reads a yaml strategy file, or returns the default strategy
// when no path is given. Unknown keys are rejected so that typos in
// strategy files surface immediately.
func loadStrategy(path string) (saturation.Strategy, error) {
	strategy := saturation.DefaultStrategy()
	if path == "" {
		return strategy, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return strategy, errors.Wrapf(err, "reading strategy file %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&strategy); err != nil {
		return strategy, errors.Wrapf(err, "parsing strategy file %s", path)
	}
	if err := strategy.Validate(); err != nil {
		return strategy, errors.Wrapf(err, "invalid strategy in %s", path)
	}
	return strategy, nil
}

func loadProblem(path string) (*kernel.Signature, []*kernel.Clause, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening problem file %s", path)
	}
	defer f.Close()

	sig := kernel.NewSignature()
	parsed, err := parser.Parse(f, sig)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing problem file %s", path)
	}
	clauses := make([]*kernel.Clause, len(parsed))
	for i, p := range parsed {
		clauses[i] = p.Clause
	}
	return sig, clauses, nil
}
