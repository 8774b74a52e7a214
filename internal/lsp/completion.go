package lsp

import (
	"slices"
	"strings"

	"susc/internal/ast"
	"susc/internal/driver"
	"susc/internal/linker"
	"susc/internal/parser"
	"susc/internal/things"
	"susc/internal/token"
)

const (
	completionItemKindClass      = 7
	completionItemKindProperty   = 10
	completionItemKindEnum       = 13
	completionItemKindKeyword    = 14
	completionItemKindFile       = 17
	completionItemKindEnumMember = 20
	completionItemKindStruct     = 22
)

// topLevelKeywords start the declarations allowed at the top of a file.
var topLevelKeywords = []token.Kind{
	token.KwInclude, token.KwSet, token.KwEnum, token.KwBitfield,
	token.KwEntity, token.KwCompound, token.KwConfirmation, token.KwGlobalMethod,
}

func (s *Server) completion(p positionParams) (any, error) {
	list := completionList{Items: []completionItem{}}
	if doc := s.document(p.TextDocument.URI); doc != nil {
		list.Items = append(list.Items, doc.completion(p.Position)...)
	}
	return list, nil
}

// completion asks the parser what may follow the text before the word under
// the cursor and offers the names that fit, filtered by what is typed.
func (d *document) completion(pos position) []completionItem {
	file := d.unit.Source()
	if file == nil {
		return nil
	}
	off := offsetAt(file, pos)

	pathStart := scanBack(file.Content, off, func(c byte) bool {
		return c != ' ' && c != '\t' && c != '\n' && c != '"'
	})
	if in, ok := d.insight(pathStart); ok && slices.Contains(in.Expected, token.Path) {
		return filter(d.includeItems(), string(file.Content[pathStart:off]))
	}

	wordStart := scanBack(file.Content, off, isWordByte)
	prefix := string(file.Content[wordStart:off])
	in, ok := d.insight(wordStart)
	if !ok {
		return filter(keywordItems(topLevelKeywords), prefix)
	}

	var items []completionItem
	switch open, before := openBracket(in.Stack); {
	case topIs(in.Stack, token.KwSet):
		items = settingItems()
	case open == token.LBrace && before == token.KwConfirmations:
		items = d.confirmationItems()
	case open == token.LBrace && before == token.KwErrors:
		items = d.errorCodeItems()
	case open == token.LBracket && slices.Contains(in.Expected, token.Ident):
		items = validatorItems(typeBefore(in.Stack))
	case slices.Contains(in.Expected, token.TypeIdent) && !namesDeclaration(in.Stack):
		items = d.typeItems()
	}
	var kws []token.Kind
	for _, k := range in.Expected {
		if k.IsKeyword() {
			kws = append(kws, k)
		}
	}
	items = append(items, keywordItems(kws)...)
	return filter(items, prefix)
}

func (d *document) insight(off uint32) (*parser.Insight, bool) {
	start, _ := d.unit.FileSet().Resolve(spanAt(d.unit.Source(), off))
	return d.unit.Insight(start.Line, start.Col)
}

func isWordByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func scanBack(content []byte, off uint32, ok func(byte) bool) uint32 {
	for off > 0 && ok(content[off-1]) {
		off--
	}
	return off
}

func leafKind(n *ast.Node) (token.Kind, bool) {
	if n == nil || !n.IsLeaf() {
		return token.Invalid, false
	}
	return n.Tok.Kind, true
}

func topIs(stack []*ast.Node, kind token.Kind) bool {
	if len(stack) == 0 {
		return false
	}
	k, ok := leafKind(stack[len(stack)-1])
	return ok && k == kind
}

// openBracket finds the innermost unclosed '{' or '[' on the value stack and
// the token kind right before it.
func openBracket(stack []*ast.Node) (open, before token.Kind) {
	depth := 0
	for i := len(stack) - 1; i >= 0; i-- {
		k, ok := leafKind(stack[i])
		if !ok {
			continue
		}
		switch k {
		case token.RBrace, token.RBracket:
			depth++
		case token.LBrace, token.LBracket:
			if depth > 0 {
				depth--
				continue
			}
			if i > 0 {
				before, _ = leafKind(stack[i-1])
			}
			return k, before
		}
	}
	return token.Invalid, token.Invalid
}

// typeBefore returns the name of the type whose validator list is open.
func typeBefore(stack []*ast.Node) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if k, ok := leafKind(stack[i]); ok && k == token.LBracket {
			for j := i - 1; j >= 0; j-- {
				if k, ok := leafKind(stack[j]); ok && k == token.TypeIdent {
					return stack[j].Tok.Text
				}
			}
			return ""
		}
	}
	return ""
}

// namesDeclaration reports whether a type identifier here would name a new
// declaration rather than refer to a type.
func namesDeclaration(stack []*ast.Node) bool {
	n := len(stack)
	if n == 0 {
		return false
	}
	switch k, _ := leafKind(stack[n-1]); k {
	case token.KwEntity, token.KwCompound, token.KwConfirmation:
		return true
	case token.RParen:
		// enum(1) Name, bitfield(1) Name
		if n >= 4 {
			k, _ := leafKind(stack[n-4])
			return k == token.KwEnum || k == token.KwBitfield
		}
	}
	return false
}

func filter(items []completionItem, prefix string) []completionItem {
	out := make([]completionItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.Label]; dup || !strings.HasPrefix(it.Label, prefix) {
			continue
		}
		seen[it.Label] = struct{}{}
		out = append(out, it)
	}
	return out
}

func keywordItems(kinds []token.Kind) []completionItem {
	out := make([]completionItem, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, completionItem{Label: k.Text(), Kind: completionItemKindKeyword, SortText: "z" + k.Text()})
	}
	return out
}

func settingItems() []completionItem {
	out := make([]completionItem, 0, len(driver.KnownSettings))
	for _, key := range driver.KnownSettings {
		out = append(out, completionItem{Label: key, Kind: completionItemKindProperty, Detail: "setting"})
	}
	return out
}

func (d *document) includeItems() []completionItem {
	names := d.unit.Includable()
	out := make([]completionItem, 0, len(names))
	for _, name := range names {
		out = append(out, completionItem{Label: name, Kind: completionItemKindFile})
	}
	return out
}

func validatorItems(typeName string) []completionItem {
	var out []completionItem
	for _, v := range things.Validators[typeName] {
		out = append(out, completionItem{Label: v, Kind: completionItemKindProperty, Detail: typeName + " validator"})
	}
	return out
}

func (d *document) typeItems() []completionItem {
	var out []completionItem
	for _, name := range things.Builtins {
		out = append(out, completionItem{Label: name, Kind: completionItemKindClass, Detail: "built-in"})
	}
	for _, name := range things.MagicIdentifiers {
		out = append(out, completionItem{Label: name, Kind: completionItemKindClass, Detail: "built-in"})
	}
	for _, t := range d.things {
		h := t.Head()
		kind := completionItemKindStruct
		switch t.Kind() {
		case things.KindMethod:
			continue
		case things.KindEnum, things.KindBitfield:
			kind = completionItemKindEnum
		case things.KindEntity, things.KindConfirmation:
			kind = completionItemKindClass
		}
		out = append(out, completionItem{Label: h.Name, Kind: kind, Detail: t.Kind().String(), Documentation: h.Doc})
	}
	return out
}

// errorCodeItems lists the members of the ErrorCode enum.
func (d *document) errorCodeItems() []completionItem {
	ec, ok := things.Lookup(d.things, linker.ErrorCodeEnum).(*things.Enum)
	if !ok {
		return nil
	}
	out := make([]completionItem, 0, len(ec.Members))
	for _, m := range ec.Members {
		out = append(out, completionItem{Label: m.Name, Kind: completionItemKindEnumMember, Documentation: m.Doc})
	}
	return out
}

func (d *document) confirmationItems() []completionItem {
	var out []completionItem
	for _, t := range d.things {
		if c, ok := t.(*things.Confirmation); ok {
			out = append(out, completionItem{Label: c.Name, Kind: completionItemKindClass, Documentation: c.Doc})
		}
	}
	return out
}
