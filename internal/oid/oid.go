package oid

import (
	"net/netip"
	"strconv"
	"strings"
)

const (
	// IF-MIB ifDescr, indexed by ifIndex.
	IfDescr = "1.3.6.1.2.1.2.2.1.2"
	// IP-MIB ipAdEntIfIndex, indexed by the IPv4 address itself.
	IPAdEntIfIndex = "1.3.6.1.2.1.4.20.1.2"
	// IP-MIB ipAddressIfIndex, indexed by (addrType, length-prefixed addr).
	IPAddressIfIndex = "1.3.6.1.2.1.4.34.1.3"
	// IP-MIB ipAddressPrefix, same index; value points at ipAddressPrefixTable.
	IPAddressPrefix = "1.3.6.1.2.1.4.34.1.5"
)

// InetAddressType values from INET-ADDRESS-MIB.
const (
	TypeIPv4  = 1
	TypeIPv6  = 2
	TypeIPv4z = 3
	TypeIPv6z = 4
)

// Suffix returns the instance part of name below base.
func Suffix(name, base string) (string, bool) {
	name = strings.TrimPrefix(name, ".")
	rest, ok := strings.CutPrefix(name, base+".")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

func parseOctets(parts []string) ([]byte, bool) {
	out := make([]byte, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return nil, false
		}
		out[i] = byte(n)
	}
	return out, true
}

// IfIndex parses a single-component ifIndex suffix.
func IfIndex(suffix string) (int, bool) {
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// IPv4Index decodes the ipAddrTable index "a.b.c.d".
func IPv4Index(suffix string) (netip.Addr, bool) {
	parts := strings.Split(suffix, ".")
	if len(parts) != 4 {
		return netip.Addr{}, false
	}
	b, ok := parseOctets(parts)
	if !ok {
		return netip.Addr{}, false
	}
	return netip.AddrFrom4([4]byte(b)), true
}

// IPAddressIndex decodes the ipAddressTable index "type.len.o1...on".
// Zoned addresses drop their zone octets.
func IPAddressIndex(suffix string) (netip.Addr, bool) {
	parts := strings.Split(suffix, ".")
	if len(parts) < 2 {
		return netip.Addr{}, false
	}
	typ, err1 := strconv.Atoi(parts[0])
	n, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || len(parts)-2 != n {
		return netip.Addr{}, false
	}
	b, ok := parseOctets(parts[2:])
	if !ok {
		return netip.Addr{}, false
	}

	switch {
	case typ == TypeIPv4 && n == 4, typ == TypeIPv4z && n == 8:
		return netip.AddrFrom4([4]byte(b[:4])), true
	case typ == TypeIPv6 && n == 16, typ == TypeIPv6z && n == 20:
		return netip.AddrFrom16([16]byte(b[:16])), true
	}
	return netip.Addr{}, false
}

// PrefixLength takes the ipAddressPrefix pointer value and returns its last
// component, the prefix length. zeroDotZero and out of range values fail.
func PrefixLength(pointer string) (int, bool) {
	i := strings.LastIndex(pointer, ".")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(pointer[i+1:])
	if err != nil || n < 1 || n > 128 {
		return 0, false
	}
	return n, true
}
