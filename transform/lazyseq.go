package transform

import (
	"fmt"

	"github.com/npillmayer/gobnf"
)

// LazySeq is an ordered, indexable view over a rule node's children, handed
// to accumulators. Reading an index transforms the corresponding child on
// first access and memoizes the result; repeated reads of the same index do
// not transform again. The cache belongs exclusively to one accumulator
// invocation — views are created fresh per invocation and never shared.
//
// The child nodes are borrowed from the owning rule node and must not be
// mutated.
type LazySeq struct {
	nodes []gobnf.Node
	lang  *LanguageTransformation
	cache map[int]interface{}
}

func newLazySeq(nodes []gobnf.Node, lang *LanguageTransformation) *LazySeq {
	return &LazySeq{
		nodes: nodes,
		lang:  lang,
		cache: make(map[int]interface{}),
	}
}

// Len returns the number of children. It is fixed at construction.
func (s *LazySeq) Len() int {
	return len(s.nodes)
}

// Get returns the transformed value of the i-th child, transforming it on
// first access and answering from the cache afterwards.
func (s *LazySeq) Get(i int) (interface{}, error) {
	if i < 0 || i >= len(s.nodes) {
		return nil, fmt.Errorf("child index %d out of range [0,%d)", i, len(s.nodes))
	}
	if v, ok := s.cache[i]; ok {
		return v, nil
	}
	v, err := s.lang.Transform(s.nodes[i])
	if err != nil {
		return nil, err
	}
	s.cache[i] = v
	return v, nil
}

// Slice materializes the transformed values of the children in [from,to) as a
// new slice. Every access goes through Get and thus participates in the same
// per-invocation cache.
func (s *LazySeq) Slice(from, to int) ([]interface{}, error) {
	if from < 0 || to > len(s.nodes) || from > to {
		return nil, fmt.Errorf("child range [%d,%d) out of range [0,%d)", from, to, len(s.nodes))
	}
	values := make([]interface{}, 0, to-from)
	for i := from; i < to; i++ {
		v, err := s.Get(i)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Each iterates the children in increasing index order, transforming each one
// lazily as it is consumed. Iteration stops early when f returns false, or
// when a child's transformation fails.
func (s *LazySeq) Each(f func(i int, value interface{}) bool) error {
	for i := range s.nodes {
		v, err := s.Get(i)
		if err != nil {
			return err
		}
		if !f(i, v) {
			return nil
		}
	}
	return nil
}
