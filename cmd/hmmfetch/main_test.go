package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sardanioss/hmmfetch/headers"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), Opts{List: true}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "chrome "), lines[0])
	assert.Contains(t, lines[0], "client-hints")
	assert.True(t, strings.HasPrefix(lines[2], "safari "), lines[2])
	assert.Contains(t, lines[2], "mac")
	assert.NotContains(t, lines[2], "client-hints")
}

func TestRun_PrintHeaders(t *testing.T) {
	var out bytes.Buffer
	opts := Opts{Browser: "Firefox", OS: "linux", Language: "it-IT"}
	require.NoError(t, run(context.Background(), opts, &out))

	res := out.String()
	assert.Contains(t, res, "accept-language: it-IT\n")
	assert.Contains(t, res, "user-agent: Mozilla/5.0 (X11; Linux x86_64")
	assert.True(t, strings.HasPrefix(res, "accept: "), "headers are sorted by name")
}

func TestRun_Request(t *testing.T) {
	var got *http.Request
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("X-Reply", "yes")
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	opts := Opts{
		Browser: "chrome",
		OS:      "mac",
		Headers: []string{"Accept: application/json", "X-Trace:  abc "},
		Data:    "payload",
		Engine:  "net",
		Timeout: 5 * time.Second,
	}
	opts.Args.URL = server.URL

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out))

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "payload", gotBody)
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "abc", got.Header.Get("X-Trace"))
	assert.Contains(t, got.Header.Get("User-Agent"), "Macintosh")
	assert.Equal(t, `"macOS"`, got.Header.Get("Sec-Ch-Ua-Platform"))

	res := out.String()
	assert.True(t, strings.HasPrefix(res, "HTTP/1.1 200 OK\n"), res)
	assert.Contains(t, res, "X-Reply: yes\n")
	assert.True(t, strings.HasSuffix(res, "\nhello"), res)
}

func TestRun_RequestFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	opts := Opts{Engine: "net", Timeout: time.Second}
	opts.Args.URL = url
	err := run(context.Background(), opts, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request to "+url+" failed")
}

func TestRun_BadHeader(t *testing.T) {
	opts := Opts{Headers: []string{"no-colon"}}
	opts.Args.URL = "http://127.0.0.1:1"
	err := run(context.Background(), opts, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid header "no-colon"`)
}

func TestParseHeaders(t *testing.T) {
	tbl := []struct {
		name    string
		raw     []string
		want    headers.Pairs
		wantErr bool
	}{
		{name: "empty", raw: nil, want: headers.Pairs{}},
		{name: "trimmed", raw: []string{" X-A :  1 "}, want: headers.Pairs{{"X-A", "1"}}},
		{name: "value with colon", raw: []string{"Referer: https://example.com"}, want: headers.Pairs{{"Referer", "https://example.com"}}},
		{name: "empty value", raw: []string{"X-Empty:"}, want: headers.Pairs{{"X-Empty", ""}}},
		{name: "no colon", raw: []string{"bad"}, wantErr: true},
		{name: "no name", raw: []string{": value"}, wantErr: true},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHeaders(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestOptions_Method(t *testing.T) {
	ro, err := requestOptions(Opts{})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, ro.Method)
	assert.Nil(t, ro.Body)

	ro, err = requestOptions(Opts{Data: "x"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, ro.Method)
	assert.NotNil(t, ro.Body)

	ro, err = requestOptions(Opts{Method: "put", Data: "x"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, ro.Method)
}

func TestHeaderOptions(t *testing.T) {
	h := headerOptions(Opts{Browser: "random", OS: "Windows"})
	assert.Contains(t, []string{"chrome", "firefox", "safari", "edge"}, h.Browser)
	assert.Equal(t, "windows", h.OS)

	h = headerOptions(Opts{Browser: "EDGE"})
	assert.Equal(t, "edge", h.Browser)
}

func TestMakeFetcher(t *testing.T) {
	f, err := makeFetcher(Opts{Engine: "net"}, "chrome")
	require.NoError(t, err)
	assert.NotNil(t, f)

	f, err = makeFetcher(Opts{Engine: "tls-client", Timeout: 500 * time.Millisecond}, "firefox")
	require.NoError(t, err)
	assert.NotNil(t, f)

	_, err = makeFetcher(Opts{Engine: "curl"}, "chrome")
	require.Error(t, err)
}

func TestTimeoutMillis(t *testing.T) {
	tbl := []struct {
		in   time.Duration
		want int
	}{
		{500 * time.Millisecond, 500},
		{time.Microsecond, 1},
		{1500 * time.Microsecond, 2},
		{30 * time.Second, 30000},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, timeoutMillis(tt.in), tt.in.String())
	}
}
