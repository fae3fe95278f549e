package parser

import (
	"regexp"
	"strings"
	"unicode"

	"go-ipconf/internal/portname"
)

type Kind int

const (
	KindNone Kind = iota
	KindExit
	// KindInterface carries a normalized interface name.
	KindInterface
	// KindLogical is an "interface" line whose name has no digit.
	KindLogical
	// KindAddress carries IPv4 and/or IPv6 captures.
	KindAddress
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindExit:
		return "exit"
	case KindInterface:
		return "interface"
	case KindLogical:
		return "logical"
	case KindAddress:
		return "address"
	default:
		return "unknown"
	}
}

// Line is the classified content column of one input line.
type Line struct {
	Kind Kind
	Name string
	IPv4 string
	IPv6 string
}

type rule struct {
	Name    string
	Regex   *regexp.Regexp
	Handler func(m []string) Line
}

// Context rules are anchored and tried in order; first match wins.
var contextRules = []rule{
	{
		"exit",
		regexp.MustCompile(`(?i)^(exit|ex)$`),
		func([]string) Line { return Line{Kind: KindExit} },
	},
	{
		"interface",
		regexp.MustCompile(`(?i)^interface\s+([\w\s/.\-]+)`),
		interfaceLine,
	},
}

// Address rules all run; a line may set either field or both.
var addressRules = []rule{
	{
		"ipv4",
		regexp.MustCompile(`(?i)ip address\s+([\d.]+)(?:\s+[\d.]+)?`),
		func(m []string) Line { return Line{Kind: KindAddress, IPv4: m[1]} },
	},
	{
		"ipv6",
		regexp.MustCompile(`(?i)ipv6 address\s+([0-9a-f:]+(?:/\d+)?)(?:\s|$)`),
		func(m []string) Line { return Line{Kind: KindAddress, IPv6: m[1]} },
	},
}

var (
	reColumns = regexp.MustCompile(`[\s\p{Zs}]{2,}`)
	rePrompt  = regexp.MustCompile(`^.*?#`)
	reDigit   = regexp.MustCompile(`\d`)
)

func interfaceLine(m []string) Line {
	name := strings.TrimSpace(m[1])
	if !reDigit.MatchString(name) {
		return Line{Kind: KindLogical, Name: name}
	}
	return Line{Kind: KindInterface, Name: portname.Normalize(name)}
}

// Classify matches cleaned content against the rules in priority order.
func Classify(content string) Line {
	for _, r := range contextRules {
		if m := r.Regex.FindStringSubmatch(content); m != nil {
			return r.Handler(m)
		}
	}

	out := Line{Kind: KindNone}
	for _, r := range addressRules {
		m := r.Regex.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		got := r.Handler(m)
		out.Kind = KindAddress
		if got.IPv4 != "" {
			out.IPv4 = got.IPv4
		}
		if got.IPv6 != "" {
			out.IPv6 = got.IPv6
		}
	}
	return out
}

// SplitLine separates the device column from the content column. The line is
// trimmed, then divided at the first run of two or more whitespace characters
// (Unicode spaces such as NBSP included). ok is false when the line has no
// content column.
func SplitLine(line string) (device, content string, ok bool) {
	body := strings.TrimFunc(line, unicode.IsSpace)
	parts := reColumns.Split(body, 2)
	if len(parts) < 2 {
		return "", "", false
	}
	device = parts[0]
	content = strings.TrimSpace(rePrompt.ReplaceAllString(parts[1], ""))
	return device, content, true
}
