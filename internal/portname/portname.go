package portname

import (
	"regexp"
	"strings"
)

type Rule struct {
	Regex   *regexp.Regexp
	Replace string
}

// Prefix rules are tried in order against the lowercased name; first match wins.
var Rules = []Rule{
	// "fastethernet0/1" → "fa0/1"
	{regexp.MustCompile(`^fastethernet`), "fa"},
	// "gigabitethernet0/0/1" → "gi0/0/1"
	{regexp.MustCompile(`^gigabitethernet`), "gi"},
	// "ethernet1/1" → "eth1/1"
	{regexp.MustCompile(`^ethernet`), "eth"},
	// "serial0/1/0:0" → "s0/1/0:0"
	{regexp.MustCompile(`^serial`), "s"},
}

var (
	reSpace   = regexp.MustCompile(`\s+`)
	reShortFa = regexp.MustCompile(`^f\d/\d+`)
)

// Normalize turns a raw interface identifier into its canonical short form.
func Normalize(name string) string {
	name = strings.ToLower(name)
	for _, rule := range Rules {
		if rule.Regex.MatchString(name) {
			name = rule.Regex.ReplaceAllLiteralString(name, rule.Replace)
			break
		}
	}
	return reSpace.ReplaceAllString(name, "")
}

// MergeKey collapses the bare "f" shorthand onto "fa" so that f0/1 and fa0/1
// land on the same key.
func MergeKey(name string) string {
	if reShortFa.MatchString(name) {
		return "fa" + name[1:]
	}
	return name
}
