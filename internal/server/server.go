package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// CallbackServer runs a short-lived HTTP server for one OAuth callback.
type CallbackServer struct {
	handler *OAuthHandler
	srv     *http.Server
}

// NewCallbackServer creates a callback server on host:port serving /callback
// with the given handler.
func NewCallbackServer(host string, port int, handler *OAuthHandler) *CallbackServer {
	mux := http.NewServeMux()
	mux.Handle("/callback", handler)

	return &CallbackServer{
		handler: handler,
		srv: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", host, port),
			Handler: mux,
		},
	}
}

// Wait serves until the callback arrives or the context is canceled, then
// shuts the server down and returns the OAuth result.
func (c *CallbackServer) Wait(ctx context.Context) (OAuthResult, error) {
	errs := make(chan error, 1)
	go func() {
		if err := c.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	var result OAuthResult
	select {
	case result = <-c.handler.Result():
	case err := <-errs:
		return OAuthResult{}, fmt.Errorf("callback server failed: %w", err)
	case <-ctx.Done():
		c.shutdown()
		return OAuthResult{}, ctx.Err()
	}

	c.shutdown()
	return result, nil
}

func (c *CallbackServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = c.srv.Shutdown(ctx)
}
