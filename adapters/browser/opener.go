package browser

import (
	"fmt"
	"io"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/layer-3/walletlink/ports"
	pkgbrowser "github.com/pkg/browser"
)

// SystemOpener launches the operating system's default browser
type SystemOpener struct {
	logger watermill.LoggerAdapter
}

// NewSystemOpener creates a new system browser opener
func NewSystemOpener(logger watermill.LoggerAdapter) ports.BrowserOpener {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &SystemOpener{logger: logger}
}

func (o *SystemOpener) Open(url string) error {
	if err := pkgbrowser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	o.logger.Info("Authenticator opened", watermill.LogFields{"url": url})
	return nil
}

// PrintOpener writes the URL for the user to open manually
type PrintOpener struct {
	Out io.Writer
}

func (o PrintOpener) Open(url string) error {
	_, err := fmt.Fprintf(o.Out, "Open this URL to link your wallet:\n  %s\n", url)
	return err
}

// OpenerFunc adapts a function to the BrowserOpener interface
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error {
	return f(url)
}
