package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSync(t *testing.T) {
	success := RegistrySyncs.WithLabelValues(SyncKindReload, ResultSuccess)
	failure := RegistrySyncs.WithLabelValues(SyncKindReload, ResultError)
	beforeOK, beforeErr := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordSync(SyncKindReload, time.Now(), nil)
	RecordSync(SyncKindReload, time.Now(), errors.New("boom"))
	RecordSync(SyncKindReload, time.Now(), nil)

	assert.Equal(t, beforeOK+2, testutil.ToFloat64(success))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(failure))
}

func TestRecordInvocation_CollapsesCustomCommands(t *testing.T) {
	custom := CommandInvocations.WithLabelValues(CommandLabelCustom, ResultSuccess)
	help := CommandInvocations.WithLabelValues("help", ResultSuccess)
	beforeCustom, beforeHelp := testutil.ToFloat64(custom), testutil.ToFloat64(help)

	RecordInvocation("ping", false, nil)
	RecordInvocation("rules", false, nil)
	RecordInvocation("help", true, nil)

	assert.Equal(t, beforeCustom+2, testutil.ToFloat64(custom))
	assert.Equal(t, beforeHelp+1, testutil.ToFloat64(help))
}

func TestRecordGuildEvent(t *testing.T) {
	joins := GuildEvents.WithLabelValues(GuildEventJoin)
	before := testutil.ToFloat64(joins)

	RecordGuildEvent(GuildEventJoin)

	assert.Equal(t, before+1, testutil.ToFloat64(joins))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/guilds/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/guilds/{id}", "404")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/guilds/123", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/guilds/456", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
