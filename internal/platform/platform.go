// Package platform holds the fixed per-platform sysfs layout for the
// supported Accton switch models. Sensor counts and index ranges are
// compile-time constants; there is no dynamic discovery.
package platform

import "fmt"

// ThermalNode identifies one thermal probe by its I2C bus and device
// address. The kernel exposes the value under a hwmon subdirectory whose
// name is runtime-assigned, so the resulting device path keeps a
// wildcard segment that is resolved by globbing at read time.
type ThermalNode struct {
	Bus  string
	Addr string
}

// Profile describes the hardware monitoring surface of one switch model.
type Profile struct {
	Name string

	// Fan fault flags: static paths, one per fan, 0-based index.
	FanFaultPaths []string

	// Thermal probes: 1-based index into Nodes, expanded through
	// ThermalPathTemplate.
	ThermalNodes        []ThermalNode
	ThermalPathTemplate string
}

const (
	as5712FanCount = 5
	as5712FanPath  = "/sys/devices/platform/as5712_54x_fan"

	as7816ThermalTemplate = "/sys/bus/i2c/devices/%s-00%s/hwmon/hwmon*/temp1_input"
)

// AS5712_54X returns the profile for the AS5712-54X. Only the fan fault
// flags are driven by the platform module on this model.
func AS5712_54X() Profile {
	paths := make([]string, as5712FanCount)
	for i := range paths {
		paths[i] = fmt.Sprintf("%s/fan%d_fault", as5712FanPath, i+1)
	}
	return Profile{
		Name:          "as5712-54x",
		FanFaultPaths: paths,
	}
}

// AS7816_64X returns the profile for the AS7816-64X. Six thermal probes
// sit on two I2C buses behind LM75 devices.
func AS7816_64X() Profile {
	return Profile{
		Name: "as7816-64x",
		ThermalNodes: []ThermalNode{
			{Bus: "18", Addr: "48"},
			{Bus: "18", Addr: "49"},
			{Bus: "18", Addr: "4a"},
			{Bus: "18", Addr: "4b"},
			{Bus: "17", Addr: "4d"},
			{Bus: "17", Addr: "4e"},
		},
		ThermalPathTemplate: as7816ThermalTemplate,
	}
}

// ByName returns the profile for the given platform identifier.
func ByName(name string) (Profile, error) {
	switch name {
	case "as5712-54x":
		return AS5712_54X(), nil
	case "as7816-64x":
		return AS7816_64X(), nil
	default:
		return Profile{}, fmt.Errorf("unknown platform %q", name)
	}
}

// FanCount returns the number of fans the profile exposes fault flags for.
func (p Profile) FanCount() int {
	return len(p.FanFaultPaths)
}

// ThermalCount returns the number of thermal probes on the main board.
func (p Profile) ThermalCount() int {
	return len(p.ThermalNodes)
}

// ThermalPath expands the device path pattern for the given 1-based
// thermal index. The returned path still contains the hwmon wildcard.
func (p Profile) ThermalPath(idx int) (string, error) {
	if idx < 1 || idx > len(p.ThermalNodes) {
		return "", fmt.Errorf("thermal index %d out of range [1, %d]", idx, len(p.ThermalNodes))
	}
	node := p.ThermalNodes[idx-1]
	return fmt.Sprintf(p.ThermalPathTemplate, node.Bus, node.Addr), nil
}
