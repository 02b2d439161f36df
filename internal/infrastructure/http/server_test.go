package http

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_StopsOnCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	srv := NewServer(e, "0", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServer_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	srv := NewServer(e, port, zerolog.Nop())

	err = srv.Run(context.Background())
	assert.Error(t, err)
}
