package kernel

// LiteralSelector fixes the selection mask of a clause before activation.
// Generating rules act only on selected literals. Every selector here is
// completeness-preserving: it selects a negative literal, all maximal
// literals, or (TotalSelector) every literal.
type LiteralSelector interface {
	Select(c *Clause)
}

// SpassSelectionValue mirrors the selection behaviours of SPASS 3.7.
type SpassSelectionValue int

const (
	SpassOff SpassSelectionValue = iota
	SpassIfSeveralMaximal
	SpassAlways
)

// maximalLiterals returns the positions of the literals of c that are not
// strictly below any other literal under ord.
func maximalLiterals(ord Ordering, c *Clause) []int {
	lits := c.Literals()
	var out []int
	for i, li := range lits {
		maximal := true
		for j, lj := range lits {
			if i == j {
				continue
			}
			if ord.CompareLiterals(li, lj) == Less {
				maximal = false
				break
			}
		}
		if maximal {
			out = append(out, i)
		}
	}
	return out
}

// MaximalSelector selects all maximal literals.
type MaximalSelector struct {
	ord Ordering
}

// NewMaximalSelector returns a selector picking every maximal literal.
func NewMaximalSelector(ord Ordering) *MaximalSelector {
	return &MaximalSelector{ord: ord}
}

func (s *MaximalSelector) Select(c *Clause) {
	if c.Len() == 0 {
		return
	}
	c.SetSelection(maximalLiterals(s.ord, c))
}

// TotalSelector selects every literal; trivially complete.
type TotalSelector struct{}

func (TotalSelector) Select(c *Clause) {
	if c.Len() == 0 {
		return
	}
	all := make([]int, c.Len())
	for i := range all {
		all[i] = i
	}
	c.SetSelection(all)
}

// BestSelector selects a single heaviest negative literal when one exists,
// otherwise all maximal literals.
type BestSelector struct {
	ord Ordering
}

// NewBestSelector returns the single-negative-literal selector.
func NewBestSelector(ord Ordering) *BestSelector {
	return &BestSelector{ord: ord}
}

func (s *BestSelector) Select(c *Clause) {
	if c.Len() == 0 {
		return
	}
	best := -1
	for i, l := range c.Literals() {
		if !l.Negative() {
			continue
		}
		if best < 0 || l.Weight() > c.Literals()[best].Weight() {
			best = i
		}
	}
	if best >= 0 {
		c.SetSelection([]int{best})
		return
	}
	c.SetSelection(maximalLiterals(s.ord, c))
}

// SpassSelector implements the three SPASS selection behaviours: Off falls
// back to maximal selection, Always selects a heaviest negative literal
// whenever one exists, IfSeveralMaximal does so only when more than one
// literal is maximal.
type SpassSelector struct {
	ord   Ordering
	value SpassSelectionValue
}

// NewSpassSelector returns a SPASS-style selector with the given behaviour.
func NewSpassSelector(ord Ordering, value SpassSelectionValue) *SpassSelector {
	return &SpassSelector{ord: ord, value: value}
}

func (s *SpassSelector) Select(c *Clause) {
	if c.Len() == 0 {
		return
	}
	maximal := maximalLiterals(s.ord, c)
	selectNegative := false
	switch s.value {
	case SpassAlways:
		selectNegative = true
	case SpassIfSeveralMaximal:
		selectNegative = len(maximal) > 1
	}
	if selectNegative {
		best := -1
		for i, l := range c.Literals() {
			if !l.Negative() {
				continue
			}
			if best < 0 || l.Weight() > c.Literals()[best].Weight() {
				best = i
			}
		}
		if best >= 0 {
			c.SetSelection([]int{best})
			return
		}
	}
	c.SetSelection(maximal)
}
