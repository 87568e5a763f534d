package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"afisha/internal/application"
	"afisha/internal/config"
	"afisha/internal/domain/entities"
	"afisha/internal/infrastructure/storage"
)

type backend struct {
	mu     sync.Mutex
	orders []map[string]any
}

func (b *backend) handler() http.Handler {
	future := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	past := time.Now().Add(-72 * time.Hour).UTC().Format(time.RFC3339)
	events := map[string]string{
		"7": fmt.Sprintf(`{"event_id":7,"name":"Jazz night","city":"Москва","event_time":%q,"seats_total":10,"purchased_count":3}`, future),
		"8": fmt.Sprintf(`{"event_id":8,"name":"Old show","event_time":%q,"seats_total":10}`, past),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/get/{id}", func(w http.ResponseWriter, r *http.Request) {
		body, ok := events[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("POST /order", func(w http.ResponseWriter, r *http.Request) {
		var order map[string]any
		_ = json.NewDecoder(r.Body).Decode(&order)
		b.mu.Lock()
		b.orders = append(b.orders, order)
		n := len(b.orders)
		b.mu.Unlock()
		fmt.Fprintf(w, `{"order_id":%d}`, n)
	})
	return mux
}

func newTestApp(t *testing.T) (*App, *storage.Memory, *bytes.Buffer, *backend) {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		APIURL:           srv.URL,
		APITimeout:       5 * time.Second,
		Locale:           "en",
		FetchConcurrency: 2,
		Location:         time.UTC,
	}
	mem := storage.NewMemory()
	var out bytes.Buffer
	app := NewApp(cfg, mem, nil, nil, WithIO(strings.NewReader(""), &out))
	return app, mem, &out, b
}

func run(app *App, args ...string) error {
	return app.CLI().RunContext(context.Background(), append([]string{"afisha"}, args...))
}

func TestApp_ConfirmListAndCancel(t *testing.T) {
	app, mem, out, b := newTestApp(t)

	require.NoError(t, run(app, "confirm", "--email", "a@x.ru", "7"))
	assert.Contains(t, out.String(), "Participation confirmed")
	assert.Contains(t, out.String(), "4/10")
	require.Len(t, b.orders, 1)
	assert.Equal(t, "a@x.ru", b.orders[0]["email"])

	raw, found, err := mem.Get(context.Background(), application.ParticipationKey)
	require.NoError(t, err)
	require.True(t, found)
	var stored entities.ParticipationMap
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.True(t, stored.Has(7))

	out.Reset()
	require.NoError(t, run(app, "my-events"))
	assert.Contains(t, out.String(), "Jazz night")

	out.Reset()
	require.NoError(t, run(app, "cancel", "7"))
	assert.Contains(t, out.String(), "Participation cancelled")

	out.Reset()
	require.NoError(t, run(app, "my-events"))
	assert.Contains(t, out.String(), "You have not confirmed any participation yet")
	assert.Len(t, b.orders, 1)
}

func TestApp_ConfirmRejectedLocally(t *testing.T) {
	app, _, _, b := newTestApp(t)

	err := run(app, "confirm", "--email", "a@x.ru", "8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The event is already over")

	err = run(app, "confirm", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Enter an email")
	assert.Empty(t, b.orders)
}

func TestApp_ExportICS(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	require.NoError(t, run(app, "confirm", "--email", "a@x.ru", "7"))

	path := filepath.Join(t.TempDir(), "my.ics")
	require.NoError(t, run(app, "my-events", "--ics", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "UID:event-7@afisha")
}

func TestApp_City(t *testing.T) {
	app, _, out, _ := newTestApp(t)

	require.NoError(t, run(app, "city"))
	assert.Contains(t, out.String(), application.DefaultCity)

	require.NoError(t, run(app, "city", "Нижний", "Новгород"))
	assert.Equal(t, "Нижний Новгород", app.session.SelectedCity(context.Background()))
}

func TestApp_CommandErrorsAreReturned(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	// a failing command must hand control back to the caller with its exit code
	err := run(app, "confirm", "404")
	require.Error(t, err)
	var coder cli.ExitCoder
	require.ErrorAs(t, err, &coder)
	assert.Equal(t, 1, coder.ExitCode())
	assert.Contains(t, err.Error(), "Event unavailable")
}

func TestEventIDArg_Invalid(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	err := run(app, "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid event id")
}
