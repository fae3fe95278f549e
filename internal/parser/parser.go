package parser

import (
	"bufio"
	"io"
	"strings"
)

// State is the parse context of a single run.
type State struct {
	Result *Result
	// Device is nil until the first line with a device column.
	Device *Device
	// Interface is the current interface name, "" outside interface scope.
	Interface string
}

func NewState() *State {
	return &State{Result: NewResult()}
}

// Step applies one classified line. A non-empty device name switches the
// current device but leaves the interface context alone.
func (s *State) Step(device string, ln Line) {
	if device != "" {
		s.Device = s.Result.Ensure(device)
	}

	switch ln.Kind {
	case KindExit, KindLogical:
		s.Interface = ""
	case KindInterface:
		if s.Device == nil {
			s.Interface = ""
			return
		}
		s.Interface = ln.Name
		s.Device.Ensure(ln.Name)
	case KindAddress:
		if s.Interface == "" || s.Device == nil {
			return
		}
		iface := s.Device.Ensure(s.Interface)
		if ln.IPv4 != "" {
			iface.IPv4 = ln.IPv4
		}
		if ln.IPv6 != "" {
			iface.IPv6 = ln.IPv6
		}
	}
}

// Feed splits, classifies and applies one raw input line.
func (s *State) Feed(line string) {
	s.Result.Lines++
	device, content, ok := SplitLine(line)
	if !ok {
		return
	}
	s.Step(device, Classify(content))
}

// Parse builds the raw device → interface mapping from configuration text.
// It never fails; unrecognized lines are ignored.
func Parse(text string) *Result {
	res, _ := ParseReader(strings.NewReader(text))
	return res
}

// ParseReader is Parse over a reader. Only read errors are returned.
func ParseReader(r io.Reader) (*Result, error) {
	s := NewState()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" || err == nil {
			s.Feed(strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			return s.Result, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Extract parses text and returns the aggregated, filtered summary.
func Extract(text string) *Result {
	return Summarize(Parse(text))
}
