package poller

import (
	"context"
	"fmt"
	"net/netip"
	"sort"
	"strconv"
	"time"

	"go-ipconf/internal/config"
	"go-ipconf/internal/db"
	"go-ipconf/internal/logger"
	"go-ipconf/internal/metrics"
	"go-ipconf/internal/models"
	"go-ipconf/internal/oid"
	"go-ipconf/internal/parser"
	"go-ipconf/internal/portname"

	"github.com/gosnmp/gosnmp"
	"go.uber.org/zap"
)

// Walker is the part of *gosnmp.GoSNMP the collector needs.
type Walker interface {
	BulkWalk(rootOid string, walkFn gosnmp.WalkFunc) error
}

// ---------- SNMP FUNCTIONS ----------

func Connect(dev models.Device, cfg config.SNMPConfig) (*gosnmp.GoSNMP, error) {
	port := dev.Port
	if port == 0 {
		port = 161
	}
	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = gosnmp.Default.Timeout
	}

	g := &gosnmp.GoSNMP{
		Target:    dev.IPAddress,
		Port:      port,
		Community: dev.Community,
		Version:   gosnmp.Version2c,
		Timeout:   timeout,
		Retries:   cfg.Retries,
	}
	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("connect error: %w", err)
	}
	return g, nil
}

func toInt(pdu gosnmp.SnmpPDU) int {
	return int(gosnmp.ToBigInt(pdu.Value).Int64())
}

func InterfaceNames(w Walker) (map[int]string, error) {
	names := make(map[int]string)
	err := w.BulkWalk(oid.IfDescr, func(pdu gosnmp.SnmpPDU) error {
		suffix, ok := oid.Suffix(pdu.Name, oid.IfDescr)
		if !ok {
			return nil
		}
		idx, ok := oid.IfIndex(suffix)
		if !ok {
			return nil
		}
		if b, ok := pdu.Value.([]byte); ok {
			names[idx] = string(b)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("SNMP walk error: %w", err)
	}
	return names, nil
}

// IPv4Addresses maps ifIndex to the IPv4 addresses on it.
func IPv4Addresses(w Walker) (map[int][]netip.Addr, error) {
	addrs := make(map[int][]netip.Addr)
	err := w.BulkWalk(oid.IPAdEntIfIndex, func(pdu gosnmp.SnmpPDU) error {
		suffix, ok := oid.Suffix(pdu.Name, oid.IPAdEntIfIndex)
		if !ok {
			return nil
		}
		addr, ok := oid.IPv4Index(suffix)
		if !ok {
			return nil
		}
		idx := toInt(pdu)
		addrs[idx] = append(addrs[idx], addr)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("SNMP walk error: %w", err)
	}
	return addrs, nil
}

// IPv6Addresses maps ifIndex to "addr/len" strings. Link-local addresses
// are skipped. A failed prefix walk leaves addresses without a length.
func IPv6Addresses(w Walker) (map[int][]string, error) {
	type entry struct {
		addr  netip.Addr
		index int
	}
	entries := make(map[string]entry)
	err := w.BulkWalk(oid.IPAddressIfIndex, func(pdu gosnmp.SnmpPDU) error {
		suffix, ok := oid.Suffix(pdu.Name, oid.IPAddressIfIndex)
		if !ok {
			return nil
		}
		addr, ok := oid.IPAddressIndex(suffix)
		if !ok || !addr.Is6() || addr.IsLinkLocalUnicast() {
			return nil
		}
		entries[suffix] = entry{addr: addr, index: toInt(pdu)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("SNMP walk error: %w", err)
	}

	prefixes := make(map[string]int)
	err = w.BulkWalk(oid.IPAddressPrefix, func(pdu gosnmp.SnmpPDU) error {
		suffix, ok := oid.Suffix(pdu.Name, oid.IPAddressPrefix)
		if !ok {
			return nil
		}
		if ptr, ok := pdu.Value.(string); ok {
			if n, ok := oid.PrefixLength(ptr); ok {
				prefixes[suffix] = n
			}
		}
		return nil
	})
	if err != nil {
		logger.Logger.Debug("ipAddressPrefix walk failed", zap.Error(err))
	}

	out := make(map[int][]string)
	for suffix, e := range entries {
		s := e.addr.String()
		if n, ok := prefixes[suffix]; ok {
			s += "/" + strconv.Itoa(n)
		}
		out[e.index] = append(out[e.index], s)
	}
	for _, list := range out {
		sort.Strings(list)
	}
	return out, nil
}

// Collect builds the summarized result for one device from its IF-MIB and
// IP-MIB tables. Interfaces appear in ifIndex order; on interfaces with
// several addresses the lowest one is kept.
func Collect(w Walker, device string) (*parser.Result, error) {
	names, err := InterfaceNames(w)
	if err != nil {
		return nil, err
	}
	v4, err := IPv4Addresses(w)
	if err != nil {
		return nil, err
	}
	v6, err := IPv6Addresses(w)
	if err != nil {
		// Agents without the newer IP-MIB tables still report IPv4.
		logger.Logger.Debug("ipAddressTable walk failed", zap.String("device", device), zap.Error(err))
		v6 = nil
	}

	seen := make(map[int]bool)
	for idx := range v4 {
		seen[idx] = true
	}
	for idx := range v6 {
		seen[idx] = true
	}
	indexes := make([]int, 0, len(seen))
	for idx := range seen {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	res := parser.NewResult()
	d := res.Ensure(device)
	for _, idx := range indexes {
		name := "if" + strconv.Itoa(idx)
		if descr, ok := names[idx]; ok && descr != "" {
			name = portname.Normalize(descr)
		}
		iface := d.Ensure(name)
		if addrs := v4[idx]; len(addrs) > 0 {
			sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })
			iface.IPv4 = addrs[0].String()
		}
		if addrs := v6[idx]; len(addrs) > 0 {
			iface.IPv6 = addrs[0]
		}
	}
	return parser.Summarize(res), nil
}

// ---------- POLLER LOOP ----------

// PollDevice collects one device and stores the result as an "snmp" report.
func PollDevice(dev models.Device, cfg config.SNMPConfig) (*models.Report, error) {
	g, err := Connect(dev, cfg)
	if err != nil {
		metrics.SNMPErrors.WithLabelValues(dev.Name).Inc()
		return nil, err
	}
	defer g.Conn.Close()

	res, err := Collect(g, dev.Name)
	if err != nil {
		metrics.SNMPErrors.WithLabelValues(dev.Name).Inc()
		return nil, err
	}
	metrics.Observe("snmp", res)
	return db.SaveReport("snmp", "", res)
}

func pollAll(ctx context.Context, cfg config.SNMPConfig) {
	devices, err := db.ListDevices()
	if err != nil {
		logger.Logger.Error("Polling aborted", zap.Error(err))
		return
	}
	n := pollEach(ctx, devices, func(dev models.Device) (*models.Report, error) {
		return PollDevice(dev, cfg)
	})
	logger.Logger.Info("Polling cycle complete", zap.Int("devices", n), zap.Int("registered", len(devices)))
}

// pollEach polls devices in order and stops early once ctx is done. It
// returns the number of devices attempted.
func pollEach(ctx context.Context, devices []models.Device, poll func(models.Device) (*models.Report, error)) int {
	for i, dev := range devices {
		if ctx.Err() != nil {
			logger.Logger.Info("Polling cycle interrupted", zap.Int("remaining", len(devices)-i))
			return i
		}
		logger.Logger.Info("Polling device", zap.String("name", dev.Name), zap.String("ip", dev.IPAddress))
		rep, err := poll(dev)
		if err != nil {
			logger.Logger.Warn("Polling failed", zap.String("name", dev.Name), zap.Error(err))
			continue
		}
		logger.Logger.Info("Polling stored", zap.String("name", dev.Name), zap.String("report", rep.UUID))
	}
	return len(devices)
}

// StartBackgroundPolling polls every registered device each interval until
// ctx is done. A zero interval disables polling.
func StartBackgroundPolling(ctx context.Context, cfg config.SNMPConfig) {
	interval := cfg.Interval()
	if interval <= 0 {
		logger.Logger.Info("Background polling disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		pollAll(ctx, cfg)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
