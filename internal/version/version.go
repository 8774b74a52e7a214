package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information for susc. The variables are set at link time:
//
//	go build -ldflags "-X susc/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// Version is the semantic version of the compiler.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// String returns "susc <version>" followed by the commit and build date
// when they are known. With colored set, the version parts are painted.
func String(colored bool) string {
	var b strings.Builder
	b.WriteString("susc ")
	b.WriteString(paint(Version, colored))
	if GitCommit != "" {
		b.WriteString(" (" + GitCommit + ")")
	}
	if BuildDate != "" {
		b.WriteString(" built " + BuildDate)
	}
	return b.String()
}

func paint(v string, colored bool) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if !colored || len(parts) != 3 {
		return v
	}
	out := make([]string, 3)
	for i, c := range []*color.Color{majorColor, minorColor, patchColor} {
		c.EnableColor()
		out[i] = c.Sprint(parts[i])
	}
	s := strings.Join(out, ".")
	if suffix != "" {
		s += "-" + suffix
	}
	return s
}
