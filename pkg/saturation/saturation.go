package saturation

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inpefess/vampire/internal/containers"
	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/internal/inferences"
	"github.com/inpefess/vampire/pkg/kernel"
)

// memCheckInterval is how many loop iterations pass between heap
// measurements when a memory limit is set.
const memCheckInterval = 128

// Algorithm is the given-clause saturation driver. It owns the three
// clause containers, the index manager, and the engine chains, and runs
// single-threaded: all shared state is mutated only by the loop.
type Algorithm struct {
	sig      *kernel.Signature
	ord      kernel.Ordering
	strategy Strategy
	log      logrus.FieldLogger

	unprocessed *containers.Unprocessed
	passive     *containers.Passive
	active      *containers.Active
	imgr        *indexing.Manager
	selector    kernel.LiteralSelector

	immediate     inferences.ImmediateSimplificationEngine
	fwSimplifiers []inferences.ForwardSimplificationEngine
	bwSimplifiers []inferences.BackwardSimplificationEngine
	generators    []inferences.GeneratingEngine

	activations int
	generated   int
	closed      bool
}

// Option configures an Algorithm.
type Option func(a *Algorithm) error

// WithLogger sets the statistics sink.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Algorithm) error {
		a.log = log
		return nil
	}
}

// WithOrdering overrides the default KBO.
func WithOrdering(ord kernel.Ordering) Option {
	return func(a *Algorithm) error {
		a.ord = ord
		return nil
	}
}

var defaults = []Option{
	func(a *Algorithm) error {
		if a.ord == nil {
			a.ord = kernel.NewKBO(a.sig)
		}
		return nil
	},
	func(a *Algorithm) error {
		if a.log == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			a.log = l
		}
		return nil
	},
}

// NewAlgorithm builds a driver for one run. The strategy is validated
// here; engines are constructed and attached, acquiring their indices.
func NewAlgorithm(sig *kernel.Signature, strategy Strategy, options ...Option) (*Algorithm, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	a := &Algorithm{
		sig:         sig,
		strategy:    strategy,
		unprocessed: containers.NewUnprocessed(),
		passive:     containers.NewPassive(strategy.AgeRatio, strategy.WeightRatio),
		active:      containers.NewActive(),
	}
	for _, option := range append(options, defaults...) {
		if err := option(a); err != nil {
			return nil, err
		}
	}
	a.imgr = indexing.NewManager(a.sig, a.ord, a.active.Clauses)
	a.active.Added.Subscribe(a.imgr.OnActiveAdded)
	a.active.Removed.Subscribe(a.imgr.OnActiveRemoved)

	a.selector = a.buildSelector()
	a.immediate = inferences.NewCompositeImmediateSimplifier(
		inferences.NewDuplicateLiteralRemoval(a.sig),
		inferences.NewTrivialInequalityRemoval(a.sig),
		inferences.NewTautologyDeletion(),
	)
	a.buildChains()
	for _, e := range a.fwSimplifiers {
		e.Attach(a)
	}
	for _, e := range a.bwSimplifiers {
		e.Attach(a)
	}
	for _, e := range a.generators {
		e.Attach(a)
	}
	return a, nil
}

// Close detaches every engine, releasing the indices they hold.
func (a *Algorithm) Close() {
	if a.closed {
		return
	}
	a.closed = true
	for _, e := range a.fwSimplifiers {
		e.Detach()
	}
	for _, e := range a.bwSimplifiers {
		e.Detach()
	}
	for _, e := range a.generators {
		e.Detach()
	}
}

// Signature implements inferences.State.
func (a *Algorithm) Signature() *kernel.Signature { return a.sig }

// Ordering implements inferences.State.
func (a *Algorithm) Ordering() kernel.Ordering { return a.ord }

// IndexManager implements inferences.State.
func (a *Algorithm) IndexManager() *indexing.Manager { return a.imgr }

func (a *Algorithm) buildSelector() kernel.LiteralSelector {
	switch a.strategy.LiteralSelection {
	case SelectionComplete:
		return kernel.TotalSelector{}
	case SelectionBest:
		return kernel.NewBestSelector(a.ord)
	case SelectionSpassOff:
		return kernel.NewSpassSelector(a.ord, kernel.SpassOff)
	case SelectionSpassIfSeveralMax:
		return kernel.NewSpassSelector(a.ord, kernel.SpassIfSeveralMaximal)
	case SelectionSpassAlways:
		return kernel.NewSpassSelector(a.ord, kernel.SpassAlways)
	default:
		return kernel.NewMaximalSelector(a.ord)
	}
}

func (a *Algorithm) buildChains() {
	for _, k := range a.strategy.ForwardSimplifiers {
		switch k {
		case SimpTautology:
			a.fwSimplifiers = append(a.fwSimplifiers, inferences.NewTautologyDeletion())
		case SimpSubsumption:
			a.fwSimplifiers = append(a.fwSimplifiers, inferences.NewForwardSubsumption())
		case SimpDemodulation:
			if a.strategy.ForwardDemodulation == DemodulationOff {
				continue
			}
			a.fwSimplifiers = append(a.fwSimplifiers, inferences.NewForwardDemodulation(
				a.strategy.ForwardDemodulation == DemodulationPreordered,
				a.strategy.DemodulationRedundancyCheck == RedundancyCheckEncompass,
				a.strategy.DemodulationRedundancyCheck == RedundancyCheckOff,
			))
		}
	}
	for _, k := range a.strategy.BackwardSimplifiers {
		switch k {
		case SimpSubsumption:
			a.bwSimplifiers = append(a.bwSimplifiers, inferences.NewBackwardSubsumption())
		case SimpDemodulation:
			if a.strategy.BackwardDemodulation == DemodulationOff {
				continue
			}
			a.bwSimplifiers = append(a.bwSimplifiers, inferences.NewBackwardDemodulation(
				a.strategy.BackwardDemodulation == DemodulationPreordered,
			))
		}
	}
	for _, g := range a.strategy.Generators {
		switch g {
		case GenSuperposition:
			a.generators = append(a.generators, inferences.NewSuperposition())
		case GenEqualityResolution:
			a.generators = append(a.generators, inferences.NewEqualityResolution())
		case GenEqualityFactoring:
			a.generators = append(a.generators, inferences.NewEqualityFactoring())
		case GenBinaryResolution:
			a.generators = append(a.generators, inferences.NewBinaryResolution())
		case GenFactoring:
			a.generators = append(a.generators, inferences.NewFactoring())
		}
	}
}

// Saturate runs the given-clause loop over the input clauses until a
// refutation, exhaustion of the passive set, or a budget boundary. The
// context is polled between clauses; in-flight inferences always complete.
func (a *Algorithm) Saturate(ctx context.Context, input []*kernel.Clause) Result {
	for _, c := range input {
		a.addUnprocessed(c)
	}

	var deadline time.Time
	if a.strategy.TimeLimit > 0 {
		deadline = time.Now().Add(a.strategy.TimeLimit)
	}

	for iteration := 0; ; iteration++ {
		if reason, out := a.checkBudget(ctx, deadline, iteration); out {
			a.log.WithField("reason", reason).Info("saturation stopped on budget")
			return a.result(reason)
		}

		if !a.unprocessed.IsEmpty() {
			c := a.unprocessed.PopSelected()
			c = a.immediate.Simplify(c)
			if c == nil {
				continue
			}
			if c.IsEmpty() {
				return a.refutation(c)
			}
			a.passive.Add(c)
			continue
		}

		if a.passive.IsEmpty() {
			if a.strategy.Complete() {
				a.log.Info("passive set exhausted under a complete strategy")
				return a.result(Satisfiable)
			}
			a.log.Info("passive set exhausted under an incomplete strategy")
			return a.result(Unknown)
		}

		given := a.passive.PopSelected()
		given = a.forwardSimplify(given)
		if given == nil {
			continue
		}
		if given.IsEmpty() {
			return a.refutation(given)
		}

		a.backwardSimplify(given)
		a.activate(given)
		a.generate(given)
	}
}

func (a *Algorithm) addUnprocessed(c *kernel.Clause) {
	a.unprocessed.Add(c)
}

// forwardSimplify runs the chain until a fixed point. The first simplifier
// to act wins and the chain restarts on the replacement; a deletion returns
// nil.
func (a *Algorithm) forwardSimplify(c *kernel.Clause) *kernel.Clause {
	for {
		simplified := false
		for _, fs := range a.fwSimplifiers {
			replacement, premises, performed := fs.Perform(c)
			if !performed {
				continue
			}
			a.log.WithFields(logrus.Fields{
				"clause":   c.String(),
				"premises": len(premises),
			}).Debug("forward simplification")
			c.SetStore(kernel.StoreRewritten)
			if replacement == nil {
				return nil
			}
			c = replacement
			simplified = true
			break
		}
		if !simplified {
			return c
		}
	}
}

// backwardSimplify lets each engine collect its victims against the
// soon-to-be-activated clause, then performs the container mutations.
func (a *Algorithm) backwardSimplify(c *kernel.Clause) {
	for _, bs := range a.bwSimplifiers {
		for _, rec := range bs.Perform(c) {
			victim := rec.Victim
			switch victim.Store() {
			case kernel.StoreActive:
				a.active.Remove(victim)
			case kernel.StorePassive:
				a.passive.Remove(victim)
			default:
				continue // already removed by an earlier record
			}
			victim.SetStore(kernel.StoreRewritten)
			a.log.WithField("victim", victim.String()).Debug("backward simplification")
			if rec.Replacement != nil {
				a.addUnprocessed(rec.Replacement)
			}
		}
	}
}

func (a *Algorithm) activate(c *kernel.Clause) {
	a.selector.Select(c)
	a.active.Add(c)
	a.activations++
	a.log.WithFields(logrus.Fields{
		"clause": c.String(),
		"age":    c.Age(),
		"weight": c.Weight(),
	}).Debug("activated")
}

func (a *Algorithm) generate(c *kernel.Clause) {
	for _, g := range a.generators {
		it := g.GenerateClauses(c)
		for it.HasNext() {
			derived := it.Next()
			a.generated++
			a.addUnprocessed(derived)
		}
	}
}

func (a *Algorithm) checkBudget(ctx context.Context, deadline time.Time, iteration int) (TerminationReason, bool) {
	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return TimeLimit, true
		}
		return Unknown, true
	default:
	}
	if !deadline.IsZero() && time.Now().After(deadline) {
		return TimeLimit, true
	}
	if a.strategy.ActivationLimit > 0 && a.activations >= a.strategy.ActivationLimit {
		return Unknown, true
	}
	if a.strategy.MemoryLimit > 0 && iteration%memCheckInterval == 0 {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		if ms.HeapAlloc > a.strategy.MemoryLimit {
			return MemoryLimit, true
		}
	}
	return 0, false
}

func (a *Algorithm) refutation(c *kernel.Clause) Result {
	a.log.WithField("clause", c.ID()).Info("refutation found")
	r := a.result(Refutation)
	r.Empty = c
	return r
}

func (a *Algorithm) result(reason TerminationReason) Result {
	return Result{
		Reason:      reason,
		Activations: a.activations,
		Generated:   a.generated,
	}
}

// Saturate is the single public entry point for one run: it builds a
// driver, runs it over the input clauses, and releases its indices.
func Saturate(ctx context.Context, sig *kernel.Signature, input []*kernel.Clause, strategy Strategy, options ...Option) (Result, error) {
	alg, err := NewAlgorithm(sig, strategy, options...)
	if err != nil {
		return Result{}, err
	}
	defer alg.Close()
	return alg.Saturate(ctx, input), nil
}
