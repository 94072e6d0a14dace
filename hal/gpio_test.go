package hal

import "testing"

func TestVirtualPinConfigure(t *testing.T) {
	p := newVirtualPin("GP10", GPIOCapOutput)
	if err := p.Configure(GPIOModeInput, GPIOPullNone); err == nil {
		t.Fatal("expected input to be rejected")
	}
	if err := p.Configure(GPIOModeOutput, GPIOPullUp); err == nil {
		t.Fatal("expected pull-up to be rejected")
	}
	if err := p.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	var seen []bool
	p.onWrite = func(level bool) { seen = append(seen, level) }
	if err := p.Write(true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	level, err := p.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected high after write")
	}
	if len(seen) != 1 || !seen[0] {
		t.Fatalf("unexpected write hook calls %v", seen)
	}
}

func TestVirtualPinWriteNeedsOutputMode(t *testing.T) {
	p := newVirtualPin("GP3", GPIOCapInput|GPIOCapOutput)
	if err := p.Write(true); err == nil {
		t.Fatal("expected error writing an input pin")
	}
}

func TestPinByName(t *testing.T) {
	g := newVirtualGPIO([]GPIOPin{
		newVirtualPin("GP9", GPIOCapInput),
		newVirtualPin(PinInputSelect, GPIOCapOutput),
	})
	if p := PinByName(g, PinInputSelect); p == nil || p.Name() != PinInputSelect {
		t.Fatalf("PinByName returned %v", p)
	}
	if p := PinByName(g, "GP99"); p != nil {
		t.Fatalf("expected nil for unknown pin, got %v", p.Name())
	}
	if PinByName(newVirtualGPIO(nil), PinInputSelect) != nil {
		t.Fatal("expected nil from empty gpio")
	}
}
