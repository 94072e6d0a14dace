//go:build !tinygo

package hal

import "context"

// RunHeadless builds a host board and runs app on it without a window. It
// returns when app does and releases the board.
func RunHeadless(ctx context.Context, cfg HostConfig, app func(context.Context, Board) error) error {
	b, err := newHostBoard(cfg)
	if err != nil {
		return err
	}
	defer b.close()
	return app(ctx, b)
}
