package fetch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/filmcard/internal/backend"
	"github.com/five82/filmcard/internal/film"
)

// fakeFetcher answers from a per-locator function and counts calls.
type fakeFetcher struct {
	mu    sync.Mutex
	calls []*string
	fn    func(ctx context.Context, locator *string) (film.Payload, error)
}

func (f *fakeFetcher) FetchMovie(ctx context.Context, locator *string) (film.Payload, error) {
	f.mu.Lock()
	f.calls = append(f.calls, locator)
	f.mu.Unlock()
	return f.fn(ctx, locator)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *logCapture) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *logCapture) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Count(l.buf.String(), "level="+level)
}

func newLogger() (*slog.Logger, *logCapture) {
	capture := &logCapture{}
	return slog.New(slog.NewTextHandler(capture, &slog.HandlerOptions{Level: slog.LevelDebug})), capture
}

func fullPayload() film.Payload {
	return film.Payload{
		MovieDetails: &film.RawMovieDetails{
			MovieName:        "Mickey 17",
			Director:         "Bong Joon Ho",
			Year:             "2025",
			Genres:           " Science Fiction, Comedy ,Adventure, Drama, Thriller, Satire, Dark Comedy",
			BackdropImageURL: "https://example.com/m17.jpg",
			Synopsis:         "An expendable employee keeps coming back.",
		},
		Summary: "Messy but fun.",
		Aspects: []film.Aspect{film.NewAspect("Acting", 80, 20), film.NewAspect("Plot", 40, 60)},
	}
}

func TestController_InitialStateIsPending(t *testing.T) {
	c := NewController(&fakeFetcher{}, Options{})
	st := c.State()
	assert.Equal(t, Pending, st.Phase)
	assert.Equal(t, uint64(0), st.Generation)
	assert.False(t, st.IsTerminal())
}

func TestController_EndToEndReady(t *testing.T) {
	payload := fullPayload()
	fetcher := &fakeFetcher{fn: func(context.Context, *string) (film.Payload, error) { return payload, nil }}

	var seen []State
	c := NewController(fetcher, Options{OnChange: func(s State) { seen = append(seen, s) }})

	st := c.Fetch(context.Background(), LocatorInput("https://letterboxd.com/film/mickey-17/"))

	require.Equal(t, Ready, st.Phase)
	assert.Equal(t, "Mickey 17", st.View.Name)
	assert.Equal(t, "Bong Joon Ho", st.View.Director)
	assert.Equal(t, "2025", st.View.Year)
	assert.Equal(t, []string{"Science Fiction", "Comedy", "Adventure", "Drama", "Thriller"}, st.View.Genres)
	assert.Equal(t, "Messy but fun.", st.View.Review)
	assert.Equal(t, payload.Aspects, st.View.Aspects)
	assert.Empty(t, st.Message)

	require.Len(t, seen, 2)
	assert.Equal(t, Pending, seen[0].Phase)
	assert.Equal(t, Ready, seen[1].Phase)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestController_TransportFailureLogsOnce(t *testing.T) {
	fetcher := &fakeFetcher{fn: func(context.Context, *string) (film.Payload, error) {
		return film.Payload{}, &backend.TransportError{Err: errors.New("connection refused")}
	}}
	logger, logs := newLogger()

	var seen []Phase
	c := NewController(fetcher, Options{Logger: logger, OnChange: func(s State) { seen = append(seen, s.Phase) }})
	st := c.Fetch(context.Background(), LocatorInput("https://letterboxd.com/film/nope/"))

	require.Equal(t, Failed, st.Phase)
	assert.Equal(t, "Failed to fetch movie data: connection refused", st.Message)
	assert.Equal(t, []Phase{Pending, Failed}, seen)
	assert.Equal(t, 1, logs.count("ERROR"))
}

func TestController_StatusFailureWithoutTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := backend.NewClient(server.URL)
	require.NoError(t, err)
	logger, logs := newLogger()

	st := NewController(client, Options{Logger: logger}).Fetch(context.Background(), LocatorInput("x"))

	require.Equal(t, Failed, st.Phase)
	assert.Contains(t, st.Message, "404")
	assert.Equal(t, 1, logs.count("ERROR"))
}

func TestController_MalformedPayloadFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"movie_details": `))
	}))
	t.Cleanup(server.Close)

	client, err := backend.NewClient(server.URL)
	require.NoError(t, err)

	st := NewController(client, Options{}).Fetch(context.Background(), Input{})
	require.Equal(t, Failed, st.Phase)
	assert.True(t, strings.HasPrefix(st.Message, "Failed to fetch movie data: decode response"), st.Message)
}

func TestController_UnusualAspectsStillReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"movie_details":{"movie_name":"Heat"},"summary":"ok","aspects":[["Acting","70",30],["Plot",40,60,"x"]]}`))
	}))
	t.Cleanup(server.Close)

	client, err := backend.NewClient(server.URL)
	require.NoError(t, err)

	st := NewController(client, Options{}).Fetch(context.Background(), Input{})
	require.Equal(t, Ready, st.Phase, st.Message)
	assert.Equal(t, "Heat", st.View.Name)
	assert.Equal(t, "ok", st.View.Review)
	require.Len(t, st.View.Aspects, 2)
	assert.JSONEq(t, `["Acting","70",30]`, string(st.View.Aspects[0].Raw()))
	assert.JSONEq(t, `["Plot",40,60,"x"]`, string(st.View.Aspects[1].Raw()))
}

func TestController_StateReturnsIndependentCopy(t *testing.T) {
	payload := fullPayload()
	fetcher := &fakeFetcher{fn: func(context.Context, *string) (film.Payload, error) { return payload, nil }}
	c := NewController(fetcher, Options{})

	st := c.Fetch(context.Background(), Input{})
	require.Equal(t, Ready, st.Phase)

	st.View.Genres[0] = "mutated"
	st.View.Aspects[0] = film.NewAspect("mutated", 0, 0)

	again := c.State()
	assert.Equal(t, "Science Fiction", again.View.Genres[0])
	label, _, _, ok := again.View.Aspects[0].Triple()
	require.True(t, ok)
	assert.Equal(t, "Acting", label)
}

func TestController_ForwardsAbsentLocator(t *testing.T) {
	fetcher := &fakeFetcher{fn: func(context.Context, *string) (film.Payload, error) { return film.Payload{}, nil }}
	c := NewController(fetcher, Options{})

	st := c.Fetch(context.Background(), Input{})
	require.Equal(t, Ready, st.Phase)
	require.Equal(t, 1, fetcher.callCount())
	assert.Nil(t, fetcher.calls[0])
	assert.Equal(t, film.DefaultReview, st.View.Review)
}

func TestActivation_PendingVisibleBeforeResolution(t *testing.T) {
	release := make(chan struct{})
	fetcher := &fakeFetcher{fn: func(context.Context, *string) (film.Payload, error) {
		<-release
		return fullPayload(), nil
	}}
	c := NewController(fetcher, Options{})
	act := c.Activate(LocatorInput("a"))

	done := make(chan State, 1)
	go func() {
		st, _ := act.Run(context.Background())
		done <- st
	}()

	assert.Equal(t, Pending, c.State().Phase)
	assert.Equal(t, act.Generation(), c.State().Generation)

	close(release)
	select {
	case st := <-done:
		assert.Equal(t, Ready, st.Phase)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, Ready, c.State().Phase)
}

func TestActivation_RunIssuesOneRequest(t *testing.T) {
	fetcher := &fakeFetcher{fn: func(context.Context, *string) (film.Payload, error) { return fullPayload(), nil }}
	c := NewController(fetcher, Options{})
	act := c.Activate(LocatorInput("a"))

	first, applied := act.Run(context.Background())
	require.True(t, applied)
	second, applied := act.Run(context.Background())
	assert.False(t, applied)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestController_StaleResponseSuppressed(t *testing.T) {
	releaseOld := make(chan struct{})
	fetcher := &fakeFetcher{fn: func(_ context.Context, locator *string) (film.Payload, error) {
		if *locator == "old" {
			<-releaseOld
			return film.Payload{MovieDetails: &film.RawMovieDetails{MovieName: "Old"}}, nil
		}
		return film.Payload{MovieDetails: &film.RawMovieDetails{MovieName: "New"}}, nil
	}}
	logger, logs := newLogger()
	c := NewController(fetcher, Options{Logger: logger})

	oldAct := c.Activate(LocatorInput("old"))
	oldDone := make(chan bool, 1)
	go func() {
		_, applied := oldAct.Run(context.Background())
		oldDone <- applied
	}()

	newState, applied := c.Activate(LocatorInput("new")).Run(context.Background())
	require.True(t, applied)
	require.Equal(t, "New", newState.View.Name)

	close(releaseOld)
	select {
	case applied := <-oldDone:
		assert.False(t, applied, "stale activation must not apply")
	case <-time.After(2 * time.Second):
		t.Fatal("old Run did not return")
	}

	st := c.State()
	assert.Equal(t, Ready, st.Phase)
	assert.Equal(t, "New", st.View.Name)
	assert.Equal(t, uint64(2), st.Generation)
	assert.Equal(t, 1, logs.count("DEBUG"))
}

func TestController_StaleFailureDoesNotOverwrite(t *testing.T) {
	releaseOld := make(chan struct{})
	fetcher := &fakeFetcher{fn: func(_ context.Context, locator *string) (film.Payload, error) {
		if *locator == "old" {
			<-releaseOld
			return film.Payload{}, &backend.StatusError{Code: http.StatusBadGateway}
		}
		return fullPayload(), nil
	}}
	c := NewController(fetcher, Options{})

	oldAct := c.Activate(LocatorInput("old"))
	c.Fetch(context.Background(), LocatorInput("new"))

	close(releaseOld)
	st, applied := oldAct.Run(context.Background())
	assert.False(t, applied)
	assert.Equal(t, Failed, st.Phase)
	assert.Equal(t, Ready, c.State().Phase)
}

func TestController_HungRequestStaysPending(t *testing.T) {
	fetcher := &fakeFetcher{fn: func(ctx context.Context, _ *string) (film.Payload, error) {
		<-ctx.Done()
		return film.Payload{}, &backend.TransportError{Err: ctx.Err()}
	}}
	c := NewController(fetcher, Options{})
	act := c.Activate(LocatorInput("slow"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan State, 1)
	go func() {
		st, _ := act.Run(ctx)
		done <- st
	}()

	select {
	case <-done:
		t.Fatal("Run returned without a response")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, Pending, c.State().Phase)

	cancel()
	select {
	case st := <-done:
		assert.Equal(t, Failed, st.Phase)
		assert.Contains(t, st.Message, context.Canceled.Error())
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestController_NilFetcherFails(t *testing.T) {
	st := NewController(nil, Options{}).Fetch(context.Background(), Input{})
	require.Equal(t, Failed, st.Phase)
	assert.NotEmpty(t, st.Message)
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "Failed to fetch movie data"},
		{"transport", &backend.TransportError{Err: errors.New("dial tcp: refused")}, "Failed to fetch movie data: dial tcp: refused"},
		{"status", &backend.StatusError{Path: "/api/movie", Code: 500}, "Failed to fetch movie data: server responded with status 500"},
		{"malformed", &backend.MalformedPayloadError{Err: errors.New("unexpected EOF")}, "Failed to fetch movie data: decode response: unexpected EOF"},
		{"other", errors.New("boom"), "Failed to fetch movie data: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureMessage(tt.err))
		})
	}
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "Pending(#3)", PendingState(3).String())
	assert.Equal(t, "Failed(#1 nope)", FailedState(1, "nope").String())
	assert.Equal(t, `Ready(#2 "Heat")`, ReadyState(2, film.ViewModel{Name: "Heat"}).String())
	assert.Equal(t, "Unknown", Phase(9).String())
	assert.True(t, ReadyState(1, film.ViewModel{}).IsTerminal())
	assert.True(t, FailedState(1, "x").IsTerminal())
	assert.False(t, PendingState(1).IsTerminal())
}
