package hal

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

// The PCA9685 counts PWM phase in 4096 ticks per period.
const pcaTicks = 4096

type pcaPWM struct {
	bus     i2c.BusCloser
	dev     *pca9685.Dev
	channel int
	maxDuty uint32
}

// NewPCA9685 drives one channel of a PCA9685 16-channel PWM controller over
// I²C. busName "" selects the first available bus.
func NewPCA9685(busName string, channel int, freqHz uint, maxDuty uint32) (PWM, error) {
	if channel < 0 || channel >= 16 {
		return nil, fmt.Errorf("pca9685 channel %d out of range 0-15", channel)
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	dev, err := pca9685.NewI2C(bus, pca9685.I2CAddr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init pca9685: %w", err)
	}

	if err := dev.SetPwmFreq(physic.Frequency(freqHz) * physic.Hertz); err != nil {
		bus.Close()
		return nil, fmt.Errorf("set pca9685 frequency: %w", err)
	}

	return &pcaPWM{bus: bus, dev: dev, channel: channel, maxDuty: maxDuty}, nil
}

func (p *pcaPWM) SetDuty(duty uint32) error {
	off := gpio.Duty(uint64(duty) * (pcaTicks - 1) / uint64(p.maxDuty))
	if err := p.dev.SetPwm(p.channel, 0, off); err != nil {
		return fmt.Errorf("pca9685 write channel %d: %w", p.channel, err)
	}
	return nil
}

func (p *pcaPWM) Close() error {
	return p.bus.Close()
}
