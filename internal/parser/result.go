package parser

// Interface holds the addresses found for one interface. An empty string
// means the address was never set.
type Interface struct {
	Name string `json:"name"`
	IPv4 string `json:"ipv4,omitempty"`
	IPv6 string `json:"ipv6,omitempty"`
}

func (i *Interface) HasAddress() bool {
	return i.IPv4 != "" || i.IPv6 != ""
}

// Device keeps its interfaces in order of first appearance.
type Device struct {
	Name       string       `json:"name"`
	Interfaces []*Interface `json:"interfaces"`

	byName map[string]*Interface
}

func NewDevice(name string) *Device {
	return &Device{Name: name, Interfaces: []*Interface{}, byName: make(map[string]*Interface)}
}

// Interface returns the named interface or nil.
func (d *Device) Interface(name string) *Interface {
	return d.byName[name]
}

// Ensure returns the named interface, appending an empty one if missing.
func (d *Device) Ensure(name string) *Interface {
	if iface, ok := d.byName[name]; ok {
		return iface
	}
	iface := &Interface{Name: name}
	d.byName[name] = iface
	d.Interfaces = append(d.Interfaces, iface)
	return iface
}

// Result maps device name to its interfaces, ordered by first appearance.
type Result struct {
	Devices []*Device `json:"devices"`

	// Lines is the number of input lines read.
	Lines int `json:"-"`

	byName map[string]*Device
}

func NewResult() *Result {
	return &Result{Devices: []*Device{}, byName: make(map[string]*Device)}
}

func (r *Result) Device(name string) *Device {
	return r.byName[name]
}

func (r *Result) Ensure(name string) *Device {
	if d, ok := r.byName[name]; ok {
		return d
	}
	d := NewDevice(name)
	r.byName[name] = d
	r.Devices = append(r.Devices, d)
	return d
}

// Add appends an already built device. A name already present is ignored.
func (r *Result) Add(d *Device) {
	if _, ok := r.byName[d.Name]; ok {
		return
	}
	r.byName[d.Name] = d
	r.Devices = append(r.Devices, d)
}

// Empty reports the "nothing found" outcome.
func (r *Result) Empty() bool {
	return len(r.Devices) == 0
}

// InterfaceCount sums interfaces across all devices.
func (r *Result) InterfaceCount() int {
	n := 0
	for _, d := range r.Devices {
		n += len(d.Interfaces)
	}
	return n
}
