//go:build tinygo && baremetal

package hal

import "machine"

type tinyGoBoard struct {
	logger  *uartLogger
	display FrameSink
	adc     *machineADC
	timer   PeriodicTimer
	touch   Touch
	gpio    GPIO
}

// New returns the analyzer board: ILI9341 on SPI0, XPT2046 on bit-banged
// pins and the RP2040 ADC.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() Board {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	bl := machine.GP22
	bl.Configure(machine.PinConfig{Mode: machine.PinOutput})
	bl.High()

	var display FrameSink
	if d, err := newILI9341(); err == nil {
		display = d
	} else {
		logger.WriteLineString("display: " + err.Error())
		display = NewMemoryDisplay(ScreenWidth, ScreenHeight)
	}

	sel := newMachinePin(PinInputSelect, machine.GP10)
	return &tinyGoBoard{
		logger:  logger,
		display: display,
		adc:     newMachineADC(),
		timer:   NewPeriodicTimer(),
		touch:   newXPT2046(),
		gpio:    newVirtualGPIO([]GPIOPin{sel, newMachinePin("GP25", machine.LED)}),
	}
}

func (h *tinyGoBoard) Logger() Logger       { return h.logger }
func (h *tinyGoBoard) Display() FrameSink   { return h.display }
func (h *tinyGoBoard) ADC() ADC             { return h.adc }
func (h *tinyGoBoard) Timer() PeriodicTimer { return h.timer }
func (h *tinyGoBoard) Clock() Clock         { return SystemClock{} }
func (h *tinyGoBoard) Touch() Touch         { return h.touch }
func (h *tinyGoBoard) Keyboard() Keyboard   { return noKeyboard{} }
func (h *tinyGoBoard) GPIO() GPIO           { return h.gpio }
