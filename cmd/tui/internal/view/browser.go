package view

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/browser"
)

func init() {
	// xdg-open and friends write to the terminal the TUI is drawing on.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Browser opens wallet checkout pages in the desktop browser.
type Browser struct{}

func (Browser) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}

	return nil
}
