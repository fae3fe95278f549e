package export

import (
	"bufio"
	"io"
	"strings"

	"go-ipconf/internal/parser"
)

const (
	Filename    = "interfaces_output.txt"
	ContentType = "text/plain; charset=utf-8"
	// None stands in for an unset address.
	None = "None"
)

func OrNone(addr string) string {
	if addr == "" {
		return None
	}
	return addr
}

// WriteText writes one block per device: the device name, each interface
// indented with its IPv4 and IPv6 lines, and a blank separator line.
func WriteText(w io.Writer, res *parser.Result) error {
	bw := bufio.NewWriter(w)
	for _, d := range res.Devices {
		bw.WriteString(d.Name + "\n")
		for _, iface := range d.Interfaces {
			bw.WriteString("  " + iface.Name + "\n")
			bw.WriteString("    IPv4: " + OrNone(iface.IPv4) + "\n")
			bw.WriteString("    IPv6: " + OrNone(iface.IPv6) + "\n")
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func Text(res *parser.Result) string {
	var sb strings.Builder
	_ = WriteText(&sb, res)
	return sb.String()
}
