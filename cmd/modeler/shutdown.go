package main

import (
	"context"
	"time"

	"house-modeler/internal/app"
	"house-modeler/internal/texture"
)

const shutdownTimeout = 5 * time.Second

// waitIdle waits for an in-flight generation and pending texture downloads, giving up when
// ctx is done.
func waitIdle(ctx context.Context, ctl *app.Controller, loader *texture.Loader) {
	done := make(chan struct{})
	go func() {
		ctl.Wait()
		loader.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
