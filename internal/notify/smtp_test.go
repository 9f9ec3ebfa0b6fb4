package notify

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestSendMail_GivesUpOnSilentServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	// accept, then never send the SMTP greeting
	accepted := make(chan net.Conn, 1)
	go func() {
		defer close(accepted)
		if c, err := ln.Accept(); err == nil {
			accepted <- c
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = sendMail(ctx, ln.Addr().String(), nil, "bot@example.com", []string{"inbox@example.com"}, []byte("hi"))
	if err == nil {
		t.Fatal("expected an error from a server that never answers")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("send did not honour the context deadline, took %v", elapsed)
	}

	_ = ln.Close()
	if c, ok := <-accepted; ok {
		_ = c.Close()
	}
}

func TestSendMail_CancelledContext(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sendMail(ctx, ln.Addr().String(), nil, "a@example.com", []string{"b@example.com"}, []byte("x")); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestSendMail_BadAddress(t *testing.T) {
	if err := sendMail(context.Background(), "no-port", nil, "a@example.com", nil, nil); err == nil {
		t.Error("expected an error for an address without a port")
	}
}
