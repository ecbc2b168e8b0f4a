package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeExposesRegisteredCollectors(t *testing.T) {
	Init()
	SearchRequests.WithLabelValues("ok").Inc()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, addr, log)
	}()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		body = string(data)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	assert.Contains(t, body, "actorrank_search_requests_total")
	assert.GreaterOrEqual(t, testutil.ToFloat64(SearchRequests.WithLabelValues("ok")), 1.0)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "clean shutdown is not an error")
	case <-time.After(3 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestServeReportsListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)

	err = Serve(context.Background(), l.Addr().String(), log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), l.Addr().String())
}
