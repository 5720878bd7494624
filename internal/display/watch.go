package display

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/scanner"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Watch connects to a hub and calls fn for every update until ctx is done.
func Watch(ctx context.Context, rawURL string, opts WatchOptions, fn func(scanner.Update)) error {
	logger := ctxlog.FromContext(ctx).With("url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 15 * time.Second
	}

	sopts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sopts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)
	defer func() {
		logger.Debug("Disconnecting display client")
		io.Disconnect()
	}()

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to display hub", "sid", io.Id())
		offer(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		offer(connectChan, err)
	})
	io.On(types.EventName(EventScannerState), func(data ...any) {
		var state []scanner.Update
		if len(data) > 0 && decode(data[0], &state) == nil {
			for _, u := range state {
				fn(u)
			}
		}
	})
	io.On(types.EventName(EventScannerUpdate), func(data ...any) {
		var u scanner.Update
		if len(data) == 0 {
			return
		}
		if err := decode(data[0], &u); err != nil {
			logger.Warn("Dropping malformed scanner update", "error", err)
			return
		}
		fn(u)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		return nil
	case <-time.After(opts.ConnectTimeout):
		return fmt.Errorf("timed out after %s waiting for socket.io connection", opts.ConnectTimeout)
	}

	<-ctx.Done()
	return nil
}

// offer delivers the first connection outcome and drops later ones, so a
// late connect_error never blocks the client's event loop.
func offer(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// decode converts a generic socket.io payload into v through JSON.
func decode(payload any, v any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
