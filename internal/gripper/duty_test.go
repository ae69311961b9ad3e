package gripper

import "testing"

func standard180() Config {
	c, ok := Profile("standard-180")
	if !ok {
		panic("missing standard-180 profile")
	}
	return c
}

func gripper120() Config {
	c, ok := Profile("gripper-120")
	if !ok {
		panic("missing gripper-120 profile")
	}
	return c
}

func TestDutyCycle_Endpoints(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		angle    int
		expected uint32
	}{
		// 500us * 65535 / 20000us = 1638.375
		{"180 min", standard180(), 0, 1638},
		// 2500us * 65535 / 20000us = 8191.875
		{"180 max", standard180(), 180, 8191},
		// 90 deg -> 1500us -> 1500 * 65535 / 20000 = 4915.125
		{"180 mid", standard180(), 90, 4915},
		// 900us * 65535 / 20000us = 2949.075
		{"120 min", gripper120(), 0, 2949},
		// 2100us * 65535 / 20000us = 6881.175
		{"120 max", gripper120(), 120, 6881},
		// 60 deg -> 1500us -> 4915 as above
		{"120 mid", gripper120(), 60, 4915},
	}

	for _, tt := range tests {
		if got := tt.cfg.DutyCycle(tt.angle); got != tt.expected {
			t.Errorf("%s: DutyCycle(%d) = %d, want %d", tt.name, tt.angle, got, tt.expected)
		}
	}
}

func TestDutyCycle_EndpointsMatchPulseWidths(t *testing.T) {
	for _, cfg := range []Config{standard180(), gripper120()} {
		wantMin := uint32(uint64(cfg.MinPulseUS) * uint64(cfg.MaxDuty()) / uint64(cfg.RefreshUS))
		wantMax := uint32(uint64(cfg.MaxPulseUS) * uint64(cfg.MaxDuty()) / uint64(cfg.RefreshUS))
		if got := cfg.DutyCycle(cfg.MinAngle); got != wantMin {
			t.Errorf("DutyCycle(min=%d) = %d, want %d", cfg.MinAngle, got, wantMin)
		}
		if got := cfg.DutyCycle(cfg.MaxAngle); got != wantMax {
			t.Errorf("DutyCycle(max=%d) = %d, want %d", cfg.MaxAngle, got, wantMax)
		}
	}
}

func TestDutyCycle_Monotonic(t *testing.T) {
	for _, cfg := range []Config{standard180(), gripper120()} {
		prev := cfg.DutyCycle(cfg.MinAngle)
		for a := cfg.MinAngle + 1; a <= cfg.MaxAngle; a++ {
			cur := cfg.DutyCycle(a)
			if cur < prev {
				t.Fatalf("DutyCycle not monotonic at %d: %d < %d", a, cur, prev)
			}
			prev = cur
		}
	}
}

func TestDutyCycle_NonZeroOffsetRange(t *testing.T) {
	// A variant whose angle domain does not start at zero.
	cfg := Config{
		Frequency:  50,
		Resolution: 16,
		MinAngle:   30,
		MaxAngle:   150,
		MinPulseUS: 1000,
		MaxPulseUS: 2000,
		RefreshUS:  20000,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	// 30 deg -> 1000us -> 1000 * 65535 / 20000 = 3276.75
	if got := cfg.DutyCycle(30); got != 3276 {
		t.Errorf("DutyCycle(30) = %d, want 3276", got)
	}
	// 90 deg -> 1500us -> 4915.125
	if got := cfg.DutyCycle(90); got != 4915 {
		t.Errorf("DutyCycle(90) = %d, want 4915", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero frequency", func(c *Config) { c.Frequency = 0 }},
		{"zero resolution", func(c *Config) { c.Resolution = 0 }},
		{"resolution too wide", func(c *Config) { c.Resolution = 33 }},
		{"inverted angles", func(c *Config) { c.MinAngle, c.MaxAngle = 90, 10 }},
		{"empty angle range", func(c *Config) { c.MinAngle, c.MaxAngle = 90, 90 }},
		{"inverted pulses", func(c *Config) { c.MinPulseUS, c.MaxPulseUS = 2500, 500 }},
		{"zero refresh", func(c *Config) { c.RefreshUS = 0 }},
		{"pulse beyond period", func(c *Config) { c.MaxPulseUS = 30000 }},
	}

	for _, tt := range tests {
		cfg := standard180()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}

	if err := standard180().Validate(); err != nil {
		t.Errorf("valid profile rejected: %v", err)
	}
}

func TestConfig_MaxDuty(t *testing.T) {
	tests := []struct {
		resolution uint
		expected   uint32
	}{
		{8, 255},
		{12, 4095},
		{16, 65535},
		{32, 4294967295},
	}
	for _, tt := range tests {
		cfg := Config{Resolution: tt.resolution}
		if got := cfg.MaxDuty(); got != tt.expected {
			t.Errorf("MaxDuty(%d bits) = %d, want %d", tt.resolution, got, tt.expected)
		}
	}
}
