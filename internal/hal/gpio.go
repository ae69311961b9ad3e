package hal

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

type gpioPWM struct {
	pin     gpio.PinIO
	freq    physic.Frequency
	maxDuty uint32
}

// NewGPIO opens a PWM-capable host pin by name ("18", "GPIO18", ...).
// freqHz is the refresh frequency of the waveform, 50 Hz for hobby servos.
func NewGPIO(pinName string, freqHz uint, maxDuty uint32) (PWM, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("no such pin %q", pinName)
	}

	return &gpioPWM{
		pin:     pin,
		freq:    physic.Frequency(freqHz) * physic.Hertz,
		maxDuty: maxDuty,
	}, nil
}

func (p *gpioPWM) SetDuty(duty uint32) error {
	// Rescale from the configured resolution to periph's 24-bit duty range.
	scaled := gpio.Duty(uint64(duty) * uint64(gpio.DutyMax) / uint64(p.maxDuty))
	if err := p.pin.PWM(scaled, p.freq); err != nil {
		return fmt.Errorf("pwm write %s: %w", p.pin.Name(), err)
	}
	return nil
}

func (p *gpioPWM) Close() error {
	return p.pin.Halt()
}
