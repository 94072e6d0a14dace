//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/xpt2046"
)

// xpt2046Touch reads the resistive panel. The driver scales readings to 16
// bits; they are reported here in 12-bit panel units.
type xpt2046Touch struct {
	dev xpt2046.Device
}

func newXPT2046() *xpt2046Touch {
	dev := xpt2046.New(machine.GP14, machine.GP13, machine.GP15, machine.GP12, machine.GP11)
	dev.Configure(&xpt2046.Config{Precision: 10})
	return &xpt2046Touch{dev: dev}
}

func (t *xpt2046Touch) Read() (TouchPoint, bool) {
	if !t.dev.Touched() {
		return TouchPoint{}, false
	}
	p := t.dev.ReadTouchPoint()
	return TouchPoint{X: p.X >> 4, Y: p.Y >> 4, Z: p.Z >> 4}, true
}

// machineADC samples GPIO 26+channel. machine.ADC.Get returns 16-bit
// scaled readings.
type machineADC struct {
	adc machine.ADC
}

func newMachineADC() *machineADC {
	machine.InitADC()
	return &machineADC{}
}

func (a *machineADC) Configure(channel uint8, rateHz uint32) error {
	if channel > 3 {
		return ErrNotImplemented
	}
	a.adc = machine.ADC{Pin: machine.Pin(26 + channel)}
	return a.adc.Configure(machine.ADCConfig{})
}

func (a *machineADC) Read() uint16 { return a.adc.Get() >> 4 }

// SetRunning is a no-op: conversions are triggered from the sample timer.
func (a *machineADC) SetRunning(on bool) {}
