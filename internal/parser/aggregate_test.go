package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func device(name string, ifaces ...Interface) *Device {
	d := NewDevice(name)
	for _, in := range ifaces {
		iface := d.Ensure(in.Name)
		iface.IPv4, iface.IPv6 = in.IPv4, in.IPv6
	}
	return d
}

func TestAggregate(t *testing.T) {
	raw := device("R1",
		Interface{Name: "fa0/1", IPv4: "10.0.0.1"},
		Interface{Name: "gi0/0"},
		Interface{Name: "f0/1", IPv6: "2001:db8::1/64"},
		Interface{Name: "s0/0/0", IPv4: "192.0.2.1"},
	)

	agg := Aggregate(raw)

	require.Len(t, agg.Interfaces, 2)
	assert.Equal(t, &Interface{Name: "fa0/1", IPv4: "10.0.0.1", IPv6: "2001:db8::1/64"}, agg.Interfaces[0])
	assert.Equal(t, &Interface{Name: "s0/0/0", IPv4: "192.0.2.1"}, agg.Interfaces[1])
	assert.Nil(t, agg.Interface("gi0/0"))
}

func TestAggregateLaterValueWins(t *testing.T) {
	raw := device("R1",
		Interface{Name: "f0/1", IPv4: "10.0.0.1", IPv6: "2001:db8::1/64"},
		Interface{Name: "fa0/1", IPv4: "10.0.0.2"},
	)

	agg := Aggregate(raw)

	require.Len(t, agg.Interfaces, 1)
	assert.Equal(t, &Interface{Name: "fa0/1", IPv4: "10.0.0.2", IPv6: "2001:db8::1/64"}, agg.Interfaces[0])
}

func TestAggregateDoesNotTouchInput(t *testing.T) {
	raw := device("R1",
		Interface{Name: "fa0/1", IPv4: "10.0.0.1"},
		Interface{Name: "f0/1", IPv4: "10.0.0.2"},
	)

	Aggregate(raw)

	assert.Equal(t, "10.0.0.1", raw.Interface("fa0/1").IPv4)
	assert.Equal(t, "10.0.0.2", raw.Interface("f0/1").IPv4)
}

func TestAggregateIdempotent(t *testing.T) {
	raw := device("R1",
		Interface{Name: "f0/1", IPv4: "10.0.0.1"},
		Interface{Name: "fa0/1", IPv6: "2001:db8::1/64"},
		Interface{Name: "gi0/1", IPv4: "10.0.1.1"},
		Interface{Name: "vlan1"},
	)

	once := Aggregate(raw)
	assert.Equal(t, once, Aggregate(once))
}

func TestSummarizeDropsEmptyDevices(t *testing.T) {
	res := Parse(`R1  interface Gi0/0
R1  exit
R2  interface Gi0/1
R2  ip address 10.0.0.1 255.255.255.0
R2  exit
R3  hostname R3
`)

	sum := Summarize(res)

	require.Len(t, sum.Devices, 1)
	assert.Equal(t, "R2", sum.Devices[0].Name)
	assert.Nil(t, sum.Device("R1"))
	assert.Equal(t, 1, sum.InterfaceCount())
	assert.Equal(t, res.Lines, sum.Lines)
}

func TestSummarizeKeepsFirstAppearanceOrder(t *testing.T) {
	res := Extract(`SW9  interface Vlan20
SW9  ip address 10.20.0.1 255.255.255.0
SW1  interface Vlan10
SW1  ip address 10.10.0.1 255.255.255.0
SW1  exit
SW9  exit
SW9  interface Vlan5
SW9  ip address 10.5.0.1 255.255.255.0
`)

	require.Len(t, res.Devices, 2)
	assert.Equal(t, "SW9", res.Devices[0].Name)
	assert.Equal(t, "SW1", res.Devices[1].Name)
	require.Len(t, res.Devices[0].Interfaces, 2)
	assert.Equal(t, "vlan20", res.Devices[0].Interfaces[0].Name)
	assert.Equal(t, "vlan5", res.Devices[0].Interfaces[1].Name)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.True(t, Summarize(NewResult()).Empty())
}
