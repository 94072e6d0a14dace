//go:build !tinygo && cgo

package hal

import (
	"context"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"picospectrum/internal/buildinfo"
)

// RunWindow opens a desktop window showing the framebuffer at 2x and runs
// app on a host board in a separate goroutine. The mouse drives the touch
// panel. It returns when the window closes or app returns.
func RunWindow(ctx context.Context, cfg HostConfig, app func(context.Context, Board) error) error {
	h, err := newHostBoard(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := &hostGame{h: h, ctx: ctx}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.setResult(app(ctx, h))
		cancel()
	}()

	ebiten.SetWindowTitle("picospectrum (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(ScreenWidth*2, ScreenHeight*2)
	ebiten.SetTPS(60)
	runErr := ebiten.RunGame(g)
	cancel()
	g.wg.Wait()
	h.close()
	if runErr != nil {
		return runErr
	}
	return g.result()
}

type hostGame struct {
	h   *hostBoard
	ctx context.Context

	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []uint16

	wg     sync.WaitGroup
	mu     sync.Mutex
	appErr error
}

func (g *hostGame) setResult(err error) {
	g.mu.Lock()
	g.appErr = err
	g.mu.Unlock()
}

func (g *hostGame) result() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.appErr == context.Canceled {
		return nil
	}
	return g.appErr
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.h.kbd.poll()
	x, y := ebiten.CursorPosition()
	g.h.touch.set(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	d := g.h.display
	w, h := d.Width(), d.Height()
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.scratch = make([]uint16, w*h)
		g.fbImg = ebiten.NewImage(w, h)
	}

	n := d.Snapshot(g.scratch)
	dst := g.img.Pix
	for i, p := range g.scratch[:n] {
		r, gg, b := RGB888From565(p)
		j := i * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
