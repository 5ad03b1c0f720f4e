package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/focus"
)

func TestFocusHandler(t *testing.T) {
	t.Run("Success: Idle by default", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")

		w := env.do(http.MethodGet, "/api/v1/focus", "")

		require.Equal(t, http.StatusOK, w.Code)
		snap := decode[focus.Snapshot](t, w)
		assert.Equal(t, focus.StateIdle, snap.State)
		assert.Equal(t, "25:00", snap.Clock)
	})

	t.Run("Success: Completion reaches the event feed", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")

		w := env.do(http.MethodPut, "/api/v1/focus/duration", `{"minutes": 1}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 60, decode[focus.Snapshot](t, w).DurationSeconds)

		w = env.do(http.MethodPost, "/api/v1/focus/start", `{"task": "Trailhead module"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, focus.StateRunning, decode[focus.Snapshot](t, w).State)

		require.Eventually(t, func() bool {
			snap := decode[focus.Snapshot](t, env.do(http.MethodGet, "/api/v1/focus", ""))
			return snap.State == focus.StateCompleted
		}, 2*time.Second, 5*time.Millisecond)

		resp := decode[eventsResponse](t, env.do(http.MethodGet, "/api/v1/events", ""))
		require.Len(t, resp.Events, 1)
		assert.Equal(t, domain.EventFocusCompleted, resp.Events[0].Type)
		assert.Equal(t, testUser, resp.Events[0].UserID)
		assert.Equal(t, "Trailhead module", resp.Events[0].Name)
	})

	t.Run("Success: Pause then reset", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")
		require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/focus/start", `{"task": "graphs"}`).Code)

		w := env.do(http.MethodPost, "/api/v1/focus/pause", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, focus.StatePaused, decode[focus.Snapshot](t, w).State)

		w = env.do(http.MethodPost, "/api/v1/focus/reset", "")
		require.Equal(t, http.StatusOK, w.Code)
		snap := decode[focus.Snapshot](t, w)
		assert.Equal(t, focus.StateIdle, snap.State)
		assert.Equal(t, snap.DurationSeconds, snap.RemainingSeconds)
	})

	t.Run("Fail: 409 Duration change while running", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")
		require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/focus/start", `{"task": "graphs"}`).Code)

		w := env.do(http.MethodPut, "/api/v1/focus/duration", `{"minutes": 45}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Fail: 400 Empty task", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")

		w := env.do(http.MethodPost, "/api/v1/focus/start", `{"task": "  "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"task"`)
	})

	t.Run("Fail: 400 Non-positive duration", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")

		w := env.do(http.MethodPut, "/api/v1/focus/duration", `{"minutes": -5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
