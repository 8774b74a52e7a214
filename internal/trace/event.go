package trace

import "time"

// Kind tells spans from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint // no duration
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope indicates the granularity of the event.
// Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers whole projects and CLI commands.
	ScopeDriver Scope = iota + 1
	// ScopePass covers source units and the link pass.
	ScopePass
	// ScopeModule covers per-file phases, includes and link stages.
	ScopeModule
	// ScopeNode covers single declarations.
	ScopeNode
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePass: "pass", ScopeModule: "module", ScopeNode: "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Points have no SpanID.
type Event struct {
	Time     time.Time
	Seq      uint64 // process-wide, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Project  string // root file of the project, "" outside a compile
	Name     string // e.g. "unit", "link", "combine"
	Detail   string
	Extra    map[string]string
}
