package status

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, runner Runner) (*fiber.App, *Service) {
	t.Helper()
	app := fiber.New()
	svc := NewService(runner, nil, 0, zap.NewNop())
	require.NoError(t, NewFeature(svc).Load(app))
	return app, svc
}

func TestHandleStatus(t *testing.T) {
	app, svc := setupTestApp(t, newBlockingRunner(nil, nil))
	svc.Seed(sampleResult())

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Running)
	require.NotNil(t, body.Last)
	assert.Equal(t, "run-1", body.Last.RunID)
	assert.Equal(t, 3, body.Last.Counters.CatalogInserted)
}

func TestHandleEvents(t *testing.T) {
	app, svc := setupTestApp(t, newBlockingRunner(nil, nil))

	resp, err := app.Test(httptest.NewRequest("GET", "/events", nil))
	require.NoError(t, err)
	var empty []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&empty))
	assert.Empty(t, empty)

	svc.Seed(sampleResult())
	resp, err = app.Test(httptest.NewRequest("GET", "/events", nil))
	require.NoError(t, err)
	var events []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, float64(654321), events[0]["game"])
}

func TestHandleSync(t *testing.T) {
	runner := newBlockingRunner(sampleResult(), nil)
	app, svc := setupTestApp(t, runner)

	resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	<-runner.started

	resp, err = app.Test(httptest.NewRequest("POST", "/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, ErrBusy.Error(), body["error"])

	close(runner.release)
	assert.Eventually(t, func() bool {
		return svc.Status(context.Background()).Runs == 1
	}, time.Second, 5*time.Millisecond)
}
