package platform

import "testing"

func TestAS5712FanPaths(t *testing.T) {
	p := AS5712_54X()

	if p.FanCount() != 5 {
		t.Fatalf("FanCount = %d, want 5", p.FanCount())
	}
	if p.FanFaultPaths[0] != "/sys/devices/platform/as5712_54x_fan/fan1_fault" {
		t.Errorf("fan 0 path = %q", p.FanFaultPaths[0])
	}
	if p.FanFaultPaths[4] != "/sys/devices/platform/as5712_54x_fan/fan5_fault" {
		t.Errorf("fan 4 path = %q", p.FanFaultPaths[4])
	}
}

func TestAS7816ThermalPath(t *testing.T) {
	p := AS7816_64X()

	if p.ThermalCount() != 6 {
		t.Fatalf("ThermalCount = %d, want 6", p.ThermalCount())
	}

	// Index 3 sits at bus 18, address 4a.
	path, err := p.ThermalPath(3)
	if err != nil {
		t.Fatalf("ThermalPath(3) failed: %v", err)
	}
	want := "/sys/bus/i2c/devices/18-004a/hwmon/hwmon*/temp1_input"
	if path != want {
		t.Errorf("ThermalPath(3) = %q, want %q", path, want)
	}

	path, err = p.ThermalPath(6)
	if err != nil {
		t.Fatalf("ThermalPath(6) failed: %v", err)
	}
	want = "/sys/bus/i2c/devices/17-004e/hwmon/hwmon*/temp1_input"
	if path != want {
		t.Errorf("ThermalPath(6) = %q, want %q", path, want)
	}
}

func TestThermalPathOutOfRange(t *testing.T) {
	p := AS7816_64X()

	for _, idx := range []int{0, 7, -1} {
		if _, err := p.ThermalPath(idx); err == nil {
			t.Errorf("ThermalPath(%d): expected range error", idx)
		}
	}
}

func TestByName(t *testing.T) {
	if _, err := ByName("as5712-54x"); err != nil {
		t.Errorf("ByName(as5712-54x) failed: %v", err)
	}
	if _, err := ByName("as7816-64x"); err != nil {
		t.Errorf("ByName(as7816-64x) failed: %v", err)
	}
	if _, err := ByName("as9999-1x"); err == nil {
		t.Error("expected error for unknown platform")
	}
}
