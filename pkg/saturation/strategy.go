// Package saturation implements the given-clause proof-search driver: the
// Unprocessed/Passive/Active loop, strategy configuration, and the
// composition of inference engines around the clause containers.
package saturation

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Demodulation configures a demodulation rule.
type Demodulation int

const (
	DemodulationAll Demodulation = iota
	DemodulationPreordered
	DemodulationOff
)

func (d Demodulation) String() string {
	switch d {
	case DemodulationAll:
		return "all"
	case DemodulationPreordered:
		return "preordered"
	default:
		return "off"
	}
}

// MarshalYAML implements yaml.Marshaler.
func (d Demodulation) MarshalYAML() (interface{}, error) { return d.String(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Demodulation) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "all":
		*d = DemodulationAll
	case "preordered":
		*d = DemodulationPreordered
	case "off":
		*d = DemodulationOff
	default:
		return fmt.Errorf("unknown demodulation mode %q", value.Value)
	}
	return nil
}

// RedundancyCheck configures the demodulation premise-redundancy
// discipline.
type RedundancyCheck int

const (
	RedundancyCheckEncompass RedundancyCheck = iota
	RedundancyCheckOn
	RedundancyCheckOff
)

func (r RedundancyCheck) String() string {
	switch r {
	case RedundancyCheckEncompass:
		return "encompass"
	case RedundancyCheckOn:
		return "on"
	default:
		return "off"
	}
}

// MarshalYAML implements yaml.Marshaler.
func (r RedundancyCheck) MarshalYAML() (interface{}, error) { return r.String(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RedundancyCheck) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "encompass":
		*r = RedundancyCheckEncompass
	case "on":
		*r = RedundancyCheckOn
	case "off":
		*r = RedundancyCheckOff
	default:
		return fmt.Errorf("unknown demodulation redundancy check %q", value.Value)
	}
	return nil
}

// LiteralSelection names a literal selection function. Every supported
// selection is completeness-preserving.
type LiteralSelection string

const (
	SelectionMaximal           LiteralSelection = "maximal"
	SelectionComplete          LiteralSelection = "complete"
	SelectionBest              LiteralSelection = "best"
	SelectionSpassOff          LiteralSelection = "spass_off"
	SelectionSpassIfSeveralMax LiteralSelection = "spass_if_several_maximal"
	SelectionSpassAlways       LiteralSelection = "spass_always"
)

// GeneratorKind names a generating inference rule.
type GeneratorKind string

const (
	GenSuperposition      GeneratorKind = "superposition"
	GenEqualityResolution GeneratorKind = "equality_resolution"
	GenEqualityFactoring  GeneratorKind = "equality_factoring"
	GenBinaryResolution   GeneratorKind = "binary_resolution"
	GenFactoring          GeneratorKind = "factoring"
)

// SimplifierKind names a simplification rule in a chain.
type SimplifierKind string

const (
	SimpSubsumption  SimplifierKind = "subsumption"
	SimpDemodulation SimplifierKind = "demodulation"
	SimpTautology    SimplifierKind = "tautology"
)

// Strategy is the read-only configuration of one saturation run. Invalid
// combinations surface from Validate at construction time, never inside the
// loop.
type Strategy struct {
	// AgeRatio and WeightRatio configure the passive selection
	// alternation: AgeRatio age-priority picks per WeightRatio
	// weight-priority picks.
	AgeRatio    int `yaml:"age_ratio"`
	WeightRatio int `yaml:"weight_ratio"`

	LiteralSelection LiteralSelection `yaml:"literal_selection"`

	ForwardDemodulation         Demodulation    `yaml:"forward_demodulation"`
	BackwardDemodulation        Demodulation    `yaml:"backward_demodulation"`
	DemodulationRedundancyCheck RedundancyCheck `yaml:"demodulation_redundancy_check"`

	Generators          []GeneratorKind  `yaml:"generators"`
	ForwardSimplifiers  []SimplifierKind `yaml:"forward_simplifiers"`
	BackwardSimplifiers []SimplifierKind `yaml:"backward_simplifiers"`

	TimeLimit time.Duration `yaml:"time_limit"`
	// MemoryLimit bounds the process heap in bytes; zero means no bound.
	MemoryLimit uint64 `yaml:"memory_limit"`
	// ActivationLimit bounds the number of activations; zero means no
	// bound. Exceeding it terminates with UNKNOWN.
	ActivationLimit int `yaml:"activation_limit"`
}

// DefaultStrategy is a complete strategy for first-order logic with
// equality.
func DefaultStrategy() Strategy {
	return Strategy{
		AgeRatio:         1,
		WeightRatio:      1,
		LiteralSelection: SelectionMaximal,

		ForwardDemodulation:         DemodulationAll,
		BackwardDemodulation:        DemodulationAll,
		DemodulationRedundancyCheck: RedundancyCheckEncompass,

		Generators: []GeneratorKind{
			GenSuperposition,
			GenEqualityResolution,
			GenEqualityFactoring,
			GenBinaryResolution,
			GenFactoring,
		},
		ForwardSimplifiers: []SimplifierKind{
			SimpTautology,
			SimpSubsumption,
			SimpDemodulation,
		},
		BackwardSimplifiers: []SimplifierKind{
			SimpSubsumption,
			SimpDemodulation,
		},
	}
}

var completeGenerators = []GeneratorKind{
	GenSuperposition,
	GenEqualityResolution,
	GenEqualityFactoring,
	GenBinaryResolution,
	GenFactoring,
}

// Validate rejects malformed strategies; it is the only place user errors
// are reported.
func (s Strategy) Validate() error {
	if s.AgeRatio < 0 || s.WeightRatio < 0 {
		return fmt.Errorf("negative age/weight ratio %d:%d", s.AgeRatio, s.WeightRatio)
	}
	if s.AgeRatio == 0 && s.WeightRatio == 0 {
		return fmt.Errorf("age/weight ratio 0:0 selects nothing")
	}
	switch s.LiteralSelection {
	case SelectionMaximal, SelectionComplete, SelectionBest,
		SelectionSpassOff, SelectionSpassIfSeveralMax, SelectionSpassAlways:
	default:
		return fmt.Errorf("unknown literal selection %q", s.LiteralSelection)
	}
	for _, g := range s.Generators {
		switch g {
		case GenSuperposition, GenEqualityResolution, GenEqualityFactoring,
			GenBinaryResolution, GenFactoring:
		default:
			return fmt.Errorf("unknown generating rule %q", g)
		}
	}
	for _, chain := range [][]SimplifierKind{s.ForwardSimplifiers, s.BackwardSimplifiers} {
		for _, k := range chain {
			switch k {
			case SimpSubsumption, SimpDemodulation, SimpTautology:
			default:
				return fmt.Errorf("unknown simplification rule %q", k)
			}
		}
	}
	if s.TimeLimit < 0 {
		return fmt.Errorf("negative time limit %s", s.TimeLimit)
	}
	return nil
}

// Complete reports whether the strategy is refutationally complete: an
// exhausted passive set then implies satisfiability.
func (s Strategy) Complete() bool {
	if s.ActivationLimit > 0 {
		return false
	}
	have := make(map[GeneratorKind]bool, len(s.Generators))
	for _, g := range s.Generators {
		have[g] = true
	}
	for _, g := range completeGenerators {
		if !have[g] {
			return false
		}
	}
	return true
}
