package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palpitefc/src/core/domain"
)

func TestMetrics_GameEvents(t *testing.T) {
	t.Parallel()
	m := New(prometheus.NewRegistry())

	m.AttemptStarted(domain.ModeDaily, false)
	m.AttemptStarted(domain.ModeDaily, true)
	m.AttemptStarted(domain.ModeDaily, true)
	m.GuessEvaluated(domain.ModeRoster, "already_guessed")
	m.AttemptFinished(domain.ModeDaily, domain.StatusWon)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attemptsStarted.WithLabelValues("DAILY", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.guessesEvaluated.WithLabelValues("ROSTER", "already_guessed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attemptsFinished.WithLabelValues("DAILY", "WON")))
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()
	m := New(prometheus.NewRegistry())
	m.GuessEvaluated(domain.ModeDaily, "CLOSE")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `palpitefc_game_guesses_total{mode="DAILY",outcome="CLOSE"} 1`)
}
