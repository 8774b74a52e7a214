package grammar

import (
	"fmt"
	"sync"

	"susc/internal/token"
)

// Nonterminal names that the converter and tooling look for in parse trees.
const (
	NFile         = "file"
	NInclude      = "include"
	NSetting      = "setting"
	NEnum         = "enum"
	NBitfield     = "bitfield"
	NMember       = "member"
	NEntity       = "entity"
	NCompound     = "compound"
	NConfirmation = "confirmation"
	NRequest      = "request"
	NResponse     = "response"
	NGlobalMethod = "global_method"
	NStaticMethod = "static_method"
	NNormalMethod = "normal_method"
	NReturns      = "returns"
	NErrors       = "errors"
	NConfirmList  = "confirmations"
	NRateLimit    = "rate_limit"
	NField        = "field"
	NOpt          = "opt"
	NType         = "type"
	NValidator    = "validator"
	NRange        = "range"
)

// IDL returns the process-wide table for the IDL grammar.
// It is built on first use and shared read-only afterwards.
var IDL = sync.OnceValue(func() *Table {
	t, err := idlGrammar().Build()
	if err != nil {
		panic(fmt.Errorf("grammar: building IDL table: %w", err))
	}
	return t
})

func idlGrammar() *Grammar {
	g := New(NFile)

	g.Rule(NFile, "_items")
	g.Rule("_items")
	g.Rule("_items", "_items", "_item")
	for _, n := range []string{NInclude, NSetting, NEnum, NBitfield, NEntity, NCompound, NConfirmation, NGlobalMethod} {
		g.Rule("_item", n)
	}

	g.Rule(NInclude, token.KwInclude, token.Path)
	g.Rule(NSetting, token.KwSet, token.Ident, token.Value)

	// enum(1) Name { a(0), b(1), }
	g.Rule(NEnum, token.KwEnum, token.LParen, token.Number, token.RParen, token.TypeIdent, token.LBrace, "_members", token.RBrace)
	g.Rule(NBitfield, token.KwBitfield, token.LParen, token.Number, token.RParen, token.TypeIdent, token.LBrace, "_members", token.RBrace)
	g.Rule("_members")
	g.Rule("_members", "_member_list")
	g.Rule("_members", "_member_list", token.Comma)
	g.Rule("_member_list", NMember)
	g.Rule("_member_list", "_member_list", token.Comma, NMember)
	g.Rule(NMember, token.Ident, token.LParen, token.Number, token.RParen)

	g.Rule(NEntity, token.KwEntity, token.TypeIdent, token.LParen, token.Number, token.RParen, token.LBrace, "_entity_body", token.RBrace)
	g.Rule("_entity_body")
	g.Rule("_entity_body", "_entity_body", NField)
	g.Rule("_entity_body", "_entity_body", NStaticMethod)
	g.Rule("_entity_body", "_entity_body", NNormalMethod)

	g.Rule(NCompound, token.KwCompound, token.TypeIdent, token.LBrace, "_fields", token.RBrace)
	g.Rule("_fields")
	g.Rule("_fields", "_fields", NField)

	g.Rule(NConfirmation, token.KwConfirmation, token.TypeIdent, token.LParen, token.Number, token.RParen, token.LBrace, "_conf_body", token.RBrace)
	g.Rule("_conf_body")
	g.Rule("_conf_body", NRequest)
	g.Rule("_conf_body", NResponse)
	g.Rule("_conf_body", NRequest, NResponse)
	g.Rule(NRequest, token.KwRequest, token.LBrace, "_fields", token.RBrace)
	g.Rule(NResponse, token.KwResponse, token.LBrace, "_fields", token.RBrace)

	g.Rule(NGlobalMethod, token.KwGlobalMethod, token.Ident, token.LParen, token.Number, token.RParen, token.LBrace, "_method_body", token.RBrace)
	g.Rule(NStaticMethod, token.KwStaticMethod, token.Ident, token.LParen, token.Number, token.RParen, token.LBrace, "_method_body", token.RBrace)
	g.Rule(NNormalMethod, token.KwMethod, token.Ident, token.LParen, token.Number, token.RParen, token.LBrace, "_method_body", token.RBrace)
	g.Rule("_method_body")
	g.Rule("_method_body", "_method_body", "_method_directive")
	for _, n := range []string{NField, NReturns, NErrors, NConfirmList, NRateLimit} {
		g.Rule("_method_directive", n)
	}
	g.Rule(NReturns, token.KwReturns, token.LBrace, "_fields", token.RBrace)
	g.Rule(NErrors, token.KwErrors, token.LBrace, "_idents", token.RBrace)
	g.Rule("_idents")
	g.Rule("_idents", "_ident_list")
	g.Rule("_idents", "_ident_list", token.Comma)
	g.Rule("_ident_list", token.Ident)
	g.Rule("_ident_list", "_ident_list", token.Comma, token.Ident)
	g.Rule(NConfirmList, token.KwConfirmations, token.LBrace, "_type_idents", token.RBrace)
	g.Rule("_type_idents")
	g.Rule("_type_idents", "_type_ident_list")
	g.Rule("_type_idents", "_type_ident_list", token.Comma)
	g.Rule("_type_ident_list", token.TypeIdent)
	g.Rule("_type_ident_list", "_type_ident_list", token.Comma, token.TypeIdent)
	g.Rule(NRateLimit, token.KwRateLimit, token.Number, token.KwEvery, token.Duration, token.Semicolon)

	// name: opt(0) Type(args)[validators];
	g.Rule(NField, token.Ident, token.Colon, NType, token.Semicolon)
	g.Rule(NField, token.Ident, token.Colon, NOpt, NType, token.Semicolon)
	g.Rule(NOpt, token.KwOpt, token.LParen, token.Number, token.RParen)

	g.Rule(NType, token.TypeIdent, "_type_args", "_type_validators")
	g.Rule("_type_args")
	g.Rule("_type_args", token.LParen, token.RParen)
	g.Rule("_type_args", token.LParen, "_targ_list", token.RParen)
	g.Rule("_targ_list", "_targ")
	g.Rule("_targ_list", "_targ_list", token.Comma, "_targ")
	g.Rule("_targ", token.Number)
	g.Rule("_targ", NType)
	g.Rule("_type_validators")
	g.Rule("_type_validators", token.LBracket, "_validator_list", token.RBracket)
	g.Rule("_validator_list", NValidator)
	g.Rule("_validator_list", "_validator_list", token.Comma, NValidator)
	g.Rule(NValidator, token.Ident, token.Colon, "_vvalue")
	g.Rule("_vvalue", token.Number)
	g.Rule("_vvalue", token.Regex)
	g.Rule("_vvalue", NRange)
	g.Rule(NRange, token.Number, token.DotDot, token.Number)
	g.Rule(NRange, token.Number, token.Plus)

	return g
}
