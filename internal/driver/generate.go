package driver

import (
	"susc/internal/things"
)

// GeneratedMethodValue is the value of the methods every entity gets for free.
const GeneratedMethodValue = 127

// FieldSelectSuffix names the bitfield generated for an entity's optional fields.
const FieldSelectSuffix = "FieldSelect"

// generateEntityExtras appends the static `get` and the instance `update`
// methods to e and returns the field select bitfield, or nil when e has no
// optional fields. Generated things carry the entity's location.
func generateEntityExtras(e *things.Entity) *things.Bitfield {
	at := func(name, doc string) things.Header {
		return things.Header{Name: name, Span: e.Span, Doc: doc, Generated: true}
	}
	self := func(name, doc string) *things.Field {
		return &things.Field{Header: at(name, doc), Type: &things.Type{Header: at(e.Name, "")}}
	}

	e.Methods = append(e.Methods,
		&things.Method{
			Header: at("get", "Gets "+e.Name+" by ID"),
			Static: true,
			Value:  GeneratedMethodValue,
			Params: []*things.Field{{
				Header: at("id", "ID of the entity to get"),
				Type:   &things.Type{Header: at("Int", ""), Args: []things.TypeArg{{Num: 8}}},
			}},
			Returns: []*things.Field{self("entity", "Entity with that ID")},
			Errors:  []string{"invalid_id"},
		},
		&things.Method{
			Header: at("update", "Updates "+e.Name),
			Value:  GeneratedMethodValue,
			Params: []*things.Field{self("entity", "The values to update")},
			Errors: []string{"invalid_entity"},
		},
	)

	var members []*things.EnumMember
	var maxIndex int64
	for _, f := range e.Fields {
		if f.Optional == nil {
			continue
		}
		members = append(members, &things.EnumMember{
			Header: things.Header{Name: f.Name, Span: f.Span, Generated: true},
			Value:  *f.Optional,
		})
		maxIndex = max(maxIndex, *f.Optional)
	}
	if len(members) == 0 {
		return nil
	}
	return &things.Bitfield{
		Header:  at(e.Name+FieldSelectSuffix, ""),
		Size:    (maxIndex + 1 + 7) / 8,
		Members: members,
	}
}
