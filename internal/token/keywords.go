package token

var keywords = map[string]Kind{
	"include":       KwInclude,
	"set":           KwSet,
	"enum":          KwEnum,
	"bitfield":      KwBitfield,
	"entity":        KwEntity,
	"compound":      KwCompound,
	"confirmation":  KwConfirmation,
	"method":        KwMethod,
	"staticmethod":  KwStaticMethod,
	"globalmethod":  KwGlobalMethod,
	"opt":           KwOpt,
	"returns":       KwReturns,
	"errors":        KwErrors,
	"confirmations": KwConfirmations,
	"ratelimit":     KwRateLimit,
	"every":         KwEvery,
	"request":       KwRequest,
	"response":      KwResponse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые, распознаются только lowercase версии.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns every keyword spelling.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
