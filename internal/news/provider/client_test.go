package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(Config{
		BaseURL:           baseURL,
		Timeout:           timeout,
		RequestsPerSecond: 1000,
	})
}

func TestClientFetch_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "weibo", r.URL.Query().Get("platform"))
		fmt.Fprint(w, `{"status":"200","data":[
			{"title":"first","url":"https://example.com/1","content":"a story"},
			{"title":"second","url":"https://example.com/2"},
			{"title":"third","url":"https://example.com/3"}
		]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	items, err := client.Fetch(context.Background(), "weibo", 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "https://example.com/1", items[0].URL)
	assert.Equal(t, "a story", items[0].Content)
}

func TestClientFetch_LimitTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"200","data":[
			{"title":"1"},{"title":"2"},{"title":"3"},{"title":"4"},{"title":"5"}
		]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	items, err := client.Fetch(context.Background(), "zhihu", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Title)
	assert.Equal(t, "2", items[1].Title)
}

func TestClientFetch_EmptyListIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"200","data":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	items, err := client.Fetch(context.Background(), "v2ex", 20)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClientFetch_HTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Fetch(context.Background(), "weibo", 20)
	require.Error(t, err)

	fetchErr, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, KindHTTP, fetchErr.Kind)
	assert.Equal(t, "HTTP 503", fetchErr.Reason())
}

func TestClientFetch_MalformedEnvelope(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>nope</html>`},
		{name: "wrong status sentinel", body: `{"status":"500","data":[]}`},
		{name: "missing data array", body: `{"status":"200"}`},
		{name: "data not an array of objects", body: `{"status":"200","data":[42]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			}))
			defer server.Close()

			client := newTestClient(server.URL, 5*time.Second)
			_, err := client.Fetch(context.Background(), "weibo", 20)
			require.Error(t, err)

			fetchErr, ok := err.(*FetchError)
			require.True(t, ok)
			assert.Equal(t, KindMalformed, fetchErr.Kind)
			assert.Equal(t, "malformed data", fetchErr.Reason())
		})
	}
}

func TestClientFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		fmt.Fprint(w, `{"status":"200","data":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 50*time.Millisecond)
	_, err := client.Fetch(context.Background(), "qq", 20)
	require.Error(t, err)

	fetchErr, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, KindTimeout, fetchErr.Kind)
	assert.Equal(t, "timeout", fetchErr.Reason())
}

func TestClientFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Fetch(context.Background(), "weibo", 20)
	require.Error(t, err)

	fetchErr, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, KindTransport, fetchErr.Kind)
}
