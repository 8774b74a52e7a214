package linker

import (
	"fmt"

	"susc/internal/diag"
	"susc/internal/things"
)

// validateValues checks that numeric identifiers are unique in their space
// and that every entity has an Int(8) id.
func (l *linker) validateValues() {
	entities := l.entities()
	reportCollisions(l, entities, "entities")
	for _, e := range entities {
		id := e.Field("id")
		switch {
		case id == nil:
			diag.Warn(l.rep, diag.LnkMissingID, e.Span,
				fmt.Sprintf("entity '%s' has no 'id' field", e.Name))
		case !isInt8(id.Type):
			diag.Warn(l.rep, diag.LnkMissingID, id.Span,
				"the 'id' field is not an Int(8)")
		}
	}

	for _, set := range l.methodSets() {
		reportCollisions(l, set, "methods")
	}
	reportCollisions(l, l.confirmations(), "confirmations")
}

func isInt8(t *things.Type) bool {
	return t != nil && t.Name == "Int" && len(t.Args) == 1 && !t.Args[0].IsType() && t.Args[0].Num == 8
}

// reportCollisions reports one error per value shared by several things,
// listing every location that uses it.
func reportCollisions[T things.Thing](l *linker, ts []T, what string) {
	byValue := make(map[int64][]T)
	var order []int64
	for _, t := range ts {
		v, _ := things.Value(t)
		if _, ok := byValue[v]; !ok {
			order = append(order, v)
		}
		byValue[v] = append(byValue[v], t)
	}
	for _, v := range order {
		if same := byValue[v]; len(same) > 1 {
			l.rep.Report(diag.LnkValueCollision, diag.SevError, spansOf(same),
				fmt.Sprintf("multiple %s with the value '%d'", what, v))
		}
	}
}
