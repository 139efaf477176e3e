package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newshub/pkg/domain"
	"github.com/umputun/newshub/server/mocks"
)

func TestIngestorServer_Refresh(t *testing.T) {
	runs := []domain.RefreshRun{
		{FetchID: "f1", BatchCount: 4},
		{Busy: true},
		{FetchID: "f3", Error: domain.StrPtr("get selected feeds: connection refused")},
	}
	runner := &mocks.RunnerMock{RefreshOnceFunc: func(context.Context) domain.RefreshRun {
		r := runs[0]
		runs = runs[1:]
		return r
	}}
	srv := NewIngestorServer(":8081", 30*time.Second, time.Minute, runner, "test", false)

	w := request(t, srv.router, http.MethodPost, "/internal/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"fetchId":"f1","batchCount":4,"error":null}`, w.Body.String())

	w = request(t, srv.router, http.MethodPost, "/internal/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	var run domain.RefreshRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.True(t, run.Busy)

	w = request(t, srv.router, http.MethodPost, "/internal/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	run = domain.RefreshRun{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.False(t, run.OK())
	assert.Equal(t, "get selected feeds: connection refused", *run.Error)

	assert.Len(t, runner.RefreshOnceCalls(), 3)

	w = request(t, srv.router, http.MethodGet, "/internal/refresh", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestIngestorServer_Status(t *testing.T) {
	srv := NewIngestorServer(":8081", 30*time.Second, time.Minute, &mocks.RunnerMock{}, "1.2.3", false)
	w := request(t, srv.router, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestIngestorServer_Run(t *testing.T) {
	port := freePort(t)
	srv := NewIngestorServer(fmt.Sprintf("127.0.0.1:%d", port), 5*time.Second, time.Minute, &mocks.RunnerMock{
		RefreshOnceFunc: func(context.Context) domain.RefreshRun { return domain.RefreshRun{FetchID: "f1"} },
	}, "test", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Post(fmt.Sprintf("http://127.0.0.1:%d/internal/refresh", port), "application/json", http.NoBody)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestIngestorServer_SlowRefresh(t *testing.T) {
	startServer := func(t *testing.T, refreshTimeout time.Duration, runner Runner) string {
		t.Helper()
		port := freePort(t)
		srv := NewIngestorServer(fmt.Sprintf("127.0.0.1:%d", port), time.Second, refreshTimeout, runner, "test", false)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- srv.Run(ctx) }()
		t.Cleanup(func() {
			cancel()
			assert.NoError(t, <-done)
		})

		base := fmt.Sprintf("http://127.0.0.1:%d", port)
		require.Eventually(t, func() bool {
			resp, err := http.Get(base + "/api/v1/status")
			if err != nil {
				return false
			}
			defer resp.Body.Close()
			return resp.StatusCode == http.StatusOK
		}, time.Second, 10*time.Millisecond)
		return base
	}

	refresh := func(t *testing.T, base string) domain.RefreshRun {
		t.Helper()
		resp, err := http.Post(base+"/internal/refresh", "application/json", http.NoBody)
		require.NoError(t, err, "response not cut by write timeout")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var run domain.RefreshRun
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
		return run
	}

	t.Run("cycle longer than write timeout", func(t *testing.T) {
		base := startServer(t, 5*time.Second, &mocks.RunnerMock{RefreshOnceFunc: func(context.Context) domain.RefreshRun {
			time.Sleep(1500 * time.Millisecond)
			return domain.RefreshRun{FetchID: "f1", BatchCount: 10}
		}})
		run := refresh(t, base)
		assert.True(t, run.OK())
		assert.Equal(t, "f1", run.FetchID)
		assert.Equal(t, 10, run.BatchCount)
	})

	t.Run("cycle limited by refresh timeout", func(t *testing.T) {
		base := startServer(t, 200*time.Millisecond, &mocks.RunnerMock{RefreshOnceFunc: func(ctx context.Context) domain.RefreshRun {
			<-ctx.Done()
			assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
			return domain.RefreshRun{FetchID: "f2", BatchCount: 3}
		}})
		st := time.Now()
		run := refresh(t, base)
		assert.Less(t, time.Since(st), time.Second)
		assert.Equal(t, "f2", run.FetchID)
		assert.Equal(t, 3, run.BatchCount)
	})
}
