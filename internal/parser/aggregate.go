package parser

import "go-ipconf/internal/portname"

// Aggregate merges a device's interfaces by merge key and drops the ones
// without any address. Fields are folded in interface order; a later
// non-empty value wins.
func Aggregate(d *Device) *Device {
	merged := NewDevice(d.Name)
	for _, iface := range d.Interfaces {
		acc := merged.Ensure(portname.MergeKey(iface.Name))
		if iface.IPv4 != "" {
			acc.IPv4 = iface.IPv4
		}
		if iface.IPv6 != "" {
			acc.IPv6 = iface.IPv6
		}
	}

	out := NewDevice(d.Name)
	for _, iface := range merged.Interfaces {
		if !iface.HasAddress() {
			continue
		}
		kept := out.Ensure(iface.Name)
		kept.IPv4, kept.IPv6 = iface.IPv4, iface.IPv6
	}
	return out
}

// Summarize aggregates every device and omits devices left with nothing.
func Summarize(r *Result) *Result {
	out := NewResult()
	out.Lines = r.Lines
	for _, d := range r.Devices {
		agg := Aggregate(d)
		if len(agg.Interfaces) == 0 {
			continue
		}
		out.Add(agg)
	}
	return out
}
