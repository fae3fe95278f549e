package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-ipconf/internal/config"
	"go-ipconf/internal/models"
	"go-ipconf/internal/oid"
	"go-ipconf/internal/parser"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWalker struct {
	tables map[string][]gosnmp.SnmpPDU
	fail   map[string]error
}

func (f *fakeWalker) BulkWalk(root string, fn gosnmp.WalkFunc) error {
	if err := f.fail[root]; err != nil {
		return err
	}
	for _, pdu := range f.tables[root] {
		if err := fn(pdu); err != nil {
			return err
		}
	}
	return nil
}

func pdu(base, suffix string, typ gosnmp.Asn1BER, value any) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{Name: "." + base + "." + suffix, Type: typ, Value: value}
}

const v6Index = "2.16.32.1.13.184.0.0.0.0.0.0.0.0.0.0.0.1"

func newFakeWalker() *fakeWalker {
	return &fakeWalker{
		tables: map[string][]gosnmp.SnmpPDU{
			oid.IfDescr: {
				pdu(oid.IfDescr, "1", gosnmp.OctetString, []byte("GigabitEthernet0/0")),
				pdu(oid.IfDescr, "2", gosnmp.OctetString, []byte("FastEthernet0/1")),
				pdu(oid.IfDescr, "3", gosnmp.OctetString, []byte("Null0")),
			},
			oid.IPAdEntIfIndex: {
				pdu(oid.IPAdEntIfIndex, "10.0.0.1", gosnmp.Integer, 1),
				pdu(oid.IPAdEntIfIndex, "192.168.1.200", gosnmp.Integer, 2),
				pdu(oid.IPAdEntIfIndex, "192.168.1.1", gosnmp.Integer, 2),
				pdu(oid.IPAdEntIfIndex, "172.16.0.1", gosnmp.Integer, 7),
			},
			oid.IPAddressIfIndex: {
				pdu(oid.IPAddressIfIndex, "1.4.10.0.0.1", gosnmp.Integer, 1),
				pdu(oid.IPAddressIfIndex, v6Index, gosnmp.Integer, 2),
				pdu(oid.IPAddressIfIndex, "2.16.254.128.0.0.0.0.0.0.0.0.0.0.0.0.0.1", gosnmp.Integer, 2),
			},
			oid.IPAddressPrefix: {
				pdu(oid.IPAddressPrefix, v6Index, gosnmp.ObjectIdentifier,
					".1.3.6.1.2.1.4.32.1.5.2.2.16.32.1.13.184.0.0.0.0.0.0.0.0.0.0.0.0.64"),
			},
		},
		fail: map[string]error{},
	}
}

func TestCollect(t *testing.T) {
	res, err := Collect(newFakeWalker(), "core1")
	require.NoError(t, err)

	require.Len(t, res.Devices, 1)
	d := res.Devices[0]
	assert.Equal(t, "core1", d.Name)
	assert.Equal(t, []*parser.Interface{
		{Name: "gi0/0", IPv4: "10.0.0.1"},
		{Name: "fa0/1", IPv4: "192.168.1.1", IPv6: "2001:db8::1/64"},
		{Name: "if7", IPv4: "172.16.0.1"},
	}, d.Interfaces)
}

func TestCollectWithoutIPAddressTable(t *testing.T) {
	w := newFakeWalker()
	w.fail[oid.IPAddressIfIndex] = errors.New("noSuchObject")

	res, err := Collect(w, "core1")
	require.NoError(t, err)
	fa := res.Device("core1").Interface("fa0/1")
	require.NotNil(t, fa)
	assert.Empty(t, fa.IPv6)
}

func TestCollectWithoutPrefixes(t *testing.T) {
	w := newFakeWalker()
	w.fail[oid.IPAddressPrefix] = errors.New("timeout")

	res, err := Collect(w, "core1")
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::1", res.Device("core1").Interface("fa0/1").IPv6)
}

func TestCollectInterfaceWalkError(t *testing.T) {
	w := newFakeWalker()
	w.fail[oid.IfDescr] = errors.New("request timeout")

	_, err := Collect(w, "core1")
	assert.ErrorContains(t, err, "request timeout")
}

func TestCollectNoAddresses(t *testing.T) {
	w := &fakeWalker{tables: map[string][]gosnmp.SnmpPDU{
		oid.IfDescr: {pdu(oid.IfDescr, "1", gosnmp.OctetString, []byte("Loopback0"))},
	}}

	res, err := Collect(w, "edge")
	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestIPv4AddressesSkipsForeignRows(t *testing.T) {
	w := &fakeWalker{tables: map[string][]gosnmp.SnmpPDU{
		oid.IPAdEntIfIndex: {
			pdu(oid.IPAdEntIfIndex, "10.0.0", gosnmp.Integer, 1),
			{Name: ".1.3.6.1.2.1.4.20.1.3.10.0.0.1", Type: gosnmp.IPAddress, Value: "255.0.0.0"},
			pdu(oid.IPAdEntIfIndex, "10.0.0.9", gosnmp.Integer, 4),
		},
	}}

	addrs, err := IPv4Addresses(w)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, "10.0.0.9", addrs[4][0].String())
}

func TestStartBackgroundPollingDisabled(t *testing.T) {
	done := make(chan struct{})
	go func() {
		StartBackgroundPolling(context.Background(), config.SNMPConfig{PollInterval: 0})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("polling with zero interval did not return")
	}
}

func TestPollEachStopsWhenCancelled(t *testing.T) {
	devices := []models.Device{{Name: "core1"}, {Name: "core2"}, {Name: "edge"}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var polled []string
	n := pollEach(ctx, devices, func(dev models.Device) (*models.Report, error) {
		polled = append(polled, dev.Name)
		cancel()
		return nil, errors.New("request timeout")
	})

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"core1"}, polled)
}

func TestPollEachPollsAll(t *testing.T) {
	devices := []models.Device{{Name: "core1"}, {Name: "core2"}}

	var polled []string
	n := pollEach(context.Background(), devices, func(dev models.Device) (*models.Report, error) {
		polled = append(polled, dev.Name)
		return &models.Report{UUID: "r-" + dev.Name}, nil
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"core1", "core2"}, polled)
}
