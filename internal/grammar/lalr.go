package grammar

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"susc/internal/token"
)

type item struct {
	prod int
	dot  int
}

type lrState struct {
	kernel []item // sorted by (prod, dot)
	la     map[item]termSet
	next   map[Symbol]int
}

type builder struct {
	g        *Grammar
	byLhs    map[Symbol][]int
	nullable map[Symbol]bool
	first    map[Symbol]termSet
	states   []*lrState
	index    map[string]int
}

// Build compiles the grammar into LALR(1) tables.
//
// States are LR(0) cores; lookaheads are propagated by re-processing a state
// whenever the lookahead set of one of its kernel items grows, until nothing
// changes. The result is the LALR(1) automaton.
func (g *Grammar) Build() (*Table, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	b := &builder{
		g:        g,
		byLhs:    make(map[Symbol][]int),
		nullable: make(map[Symbol]bool),
		first:    make(map[Symbol]termSet),
		index:    make(map[string]int),
	}
	for i, p := range g.prods {
		b.byLhs[p.Lhs] = append(b.byLhs[p.Lhs], i)
	}
	b.computeFirst()
	b.buildStates()
	return b.table(), nil
}

func (b *builder) computeFirst() {
	for changed := true; changed; {
		changed = false
		for _, p := range b.g.prods {
			f, null := b.firstSeq(p.Rhs)
			if old := b.first[p.Lhs]; old|f != old {
				b.first[p.Lhs] = old | f
				changed = true
			}
			if null && !b.nullable[p.Lhs] {
				b.nullable[p.Lhs] = true
				changed = true
			}
		}
	}
}

// firstSeq returns FIRST of a symbol sequence and whether it derives epsilon.
func (b *builder) firstSeq(seq []Symbol) (termSet, bool) {
	var out termSet
	for _, s := range seq {
		if s.IsTerminal() {
			out.add(s.Kind())
			return out, false
		}
		out |= b.first[s]
		if !b.nullable[s] {
			return out, false
		}
	}
	return out, true
}

func (b *builder) closure(st *lrState) ([]item, map[item]termSet) {
	la := make(map[item]termSet, len(st.kernel)*4)
	order := make([]item, 0, len(st.kernel)*4)
	work := make([]item, 0, len(st.kernel)*4)
	for _, it := range st.kernel {
		la[it] = st.la[it]
		order = append(order, it)
		work = append(work, it)
	}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		p := b.g.prods[it.prod]
		if it.dot >= len(p.Rhs) || p.Rhs[it.dot].IsTerminal() {
			continue
		}
		f, null := b.firstSeq(p.Rhs[it.dot+1:])
		if null {
			f |= la[it]
		}
		for _, q := range b.byLhs[p.Rhs[it.dot]] {
			ni := item{prod: q}
			old, seen := la[ni]
			if !seen {
				order = append(order, ni)
			}
			if !seen || old|f != old {
				la[ni] = old | f
				work = append(work, ni)
			}
		}
	}
	return order, la
}

func kernelKey(kernel []item) string {
	var sb strings.Builder
	for _, it := range kernel {
		sb.WriteString(strconv.Itoa(it.prod))
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(it.dot))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func (b *builder) buildStates() {
	start := &lrState{
		kernel: []item{{prod: 0, dot: 0}},
		la:     map[item]termSet{{prod: 0, dot: 0}: 1 << token.EOF},
		next:   make(map[Symbol]int),
	}
	b.states = append(b.states, start)
	b.index[kernelKey(start.kernel)] = 0

	queue := []int{0}
	queued := map[int]bool{0: true}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		queued[s] = false

		items, la := b.closure(b.states[s])
		// группируем переходы по символу после точки, в порядке появления
		var syms []Symbol
		kernels := make(map[Symbol][]item)
		kla := make(map[Symbol]map[item]termSet)
		for _, it := range items {
			p := b.g.prods[it.prod]
			if it.dot >= len(p.Rhs) {
				continue
			}
			x := p.Rhs[it.dot]
			if _, ok := kernels[x]; !ok {
				syms = append(syms, x)
				kla[x] = make(map[item]termSet)
			}
			adv := item{prod: it.prod, dot: it.dot + 1}
			if _, dup := kla[x][adv]; !dup {
				kernels[x] = append(kernels[x], adv)
			}
			kla[x][adv] |= la[it]
		}

		for _, x := range syms {
			kernel := kernels[x]
			slices.SortFunc(kernel, func(a, c item) int {
				if a.prod != c.prod {
					return a.prod - c.prod
				}
				return a.dot - c.dot
			})
			key := kernelKey(kernel)
			t, ok := b.index[key]
			if !ok {
				t = len(b.states)
				b.states = append(b.states, &lrState{kernel: kernel, la: kla[x], next: make(map[Symbol]int)})
				b.index[key] = t
				queue = append(queue, t)
				queued[t] = true
			} else {
				target := b.states[t]
				grown := false
				for it, f := range kla[x] {
					if old := target.la[it]; old|f != old {
						target.la[it] = old | f
						grown = true
					}
				}
				if grown && !queued[t] {
					queue = append(queue, t)
					queued[t] = true
				}
			}
			b.states[s].next[x] = t
		}
	}
}

func (b *builder) table() *Table {
	t := &Table{
		grammar: b.g,
		action:  make([][]Action, len(b.states)),
		gotos:   make([]map[Symbol]int, len(b.states)),
	}
	for s, st := range b.states {
		row := make([]Action, token.Count)
		t.gotos[s] = make(map[Symbol]int)
		for x, target := range st.next {
			if x.IsTerminal() {
				row[x.Kind()] = Action{Kind: ActShift, Target: target}
			} else {
				t.gotos[s][x] = target
			}
		}
		items, la := b.closure(st)
		for _, it := range items {
			p := b.g.prods[it.prod]
			if it.dot < len(p.Rhs) {
				continue
			}
			for _, k := range la[it].kinds() {
				act := Action{Kind: ActReduce, Target: it.prod}
				if it.prod == 0 {
					act = Action{Kind: ActAccept}
				}
				switch prev := row[k]; prev.Kind {
				case ActError:
					row[k] = act
				case ActShift:
					t.Conflicts = append(t.Conflicts, Conflict{State: s, Terminal: k,
						Desc: fmt.Sprintf("shift/reduce with %s", b.describe(it))})
				case ActReduce:
					if prev.Target == act.Target {
						continue
					}
					t.Conflicts = append(t.Conflicts, Conflict{State: s, Terminal: k,
						Desc: fmt.Sprintf("reduce/reduce between %s and %s", b.describe(item{prod: prev.Target, dot: len(b.g.prods[prev.Target].Rhs)}), b.describe(it))})
					if act.Target < prev.Target {
						row[k] = act
					}
				}
			}
		}
		t.action[s] = row
	}
	return t
}

func (b *builder) describe(it item) string {
	p := b.g.prods[it.prod]
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteString(" ->")
	for i, s := range p.Rhs {
		if i == it.dot {
			sb.WriteString(" .")
		}
		sb.WriteByte(' ')
		sb.WriteString(b.g.Name(s))
	}
	if it.dot == len(p.Rhs) {
		sb.WriteString(" .")
	}
	return sb.String()
}
