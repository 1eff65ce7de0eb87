package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/sardanioss/hmmfetch/client"
	"github.com/sardanioss/hmmfetch/fingerprint"
	"github.com/sardanioss/hmmfetch/headers"
	"github.com/sardanioss/hmmfetch/tlsclient"
)

// Opts with all CLI options
type Opts struct {
	Browser  string        `short:"b" long:"browser" env:"HMMFETCH_BROWSER" default:"random" description:"browser to emulate: chrome, firefox, safari, edge or random"`
	OS       string        `long:"os" env:"HMMFETCH_OS" default:"random" description:"platform to emulate: windows, mac, linux or random"`
	Language string        `long:"language" env:"HMMFETCH_LANGUAGE" default:"random" description:"accept-language value or random"`
	Headers  []string      `short:"H" long:"header" description:"extra request header as \"Name: value\", repeatable"`
	Method   string        `short:"X" long:"method" description:"request method, GET or POST with --data"`
	Data     string        `short:"d" long:"data" description:"request body"`
	Engine   string        `long:"engine" env:"HMMFETCH_ENGINE" choice:"net" choice:"tls-client" default:"net" description:"request engine"`
	Timeout  time.Duration `long:"timeout" env:"HMMFETCH_TIMEOUT" default:"30s" description:"request timeout"`
	Decode   bool          `long:"decode" description:"decode br, zstd, gzip and deflate bodies"`
	List     bool          `long:"list" description:"list browser profiles and exit"`

	Args struct {
		URL string `positional-arg-name:"URL" description:"target url, print generated headers if empty"`
	} `positional-args:"yes"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	_ = godotenv.Load()

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, os.Stdout)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		fmt.Fprintf(os.Stderr, "hmmfetch: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts Opts, out io.Writer) error {
	if opts.List {
		printProfiles(out)
		return nil
	}

	hopts := headerOptions(opts)
	if opts.Args.URL == "" {
		printHeaders(out, headers.Generate(&hopts))
		return nil
	}

	reqOpts, err := requestOptions(opts)
	if err != nil {
		return err
	}

	fetcher, err := makeFetcher(opts, fingerprint.Browser(hopts.Browser))
	if err != nil {
		return err
	}

	logger := lgr.Func(func(format string, args ...interface{}) { lgr.Printf(format, args...) })
	c := client.NewClient(client.WithFetcher(fetcher), client.WithHeaderOptions(hopts), client.WithLogger(logger))

	resp, err := c.Do(ctx, opts.Args.URL, reqOpts, nil)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", opts.Args.URL, err)
	}
	defer resp.Body.Close()

	return printResponse(out, resp, opts.Decode)
}

// headerOptions pins the browser up front so the tls-client engine can use a matching TLS profile
func headerOptions(opts Opts) headers.Options {
	browser := strings.ToLower(opts.Browser)
	if browser == "" || browser == fingerprint.Random {
		browser = string(headers.Pick(headers.DefaultPicker, fingerprint.Browsers()))
	}
	return headers.Options{Browser: browser, OS: strings.ToLower(opts.OS), Language: opts.Language}
}

func requestOptions(opts Opts) (*client.RequestOptions, error) {
	hdrs, err := parseHeaders(opts.Headers)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
		if opts.Data != "" {
			method = http.MethodPost
		}
	}

	res := &client.RequestOptions{Method: method, Headers: hdrs}
	if opts.Data != "" {
		res.Body = strings.NewReader(opts.Data)
	}
	return res, nil
}

// parseHeaders converts "Name: value" strings, later duplicates win
func parseHeaders(raw []string) (headers.Pairs, error) {
	res := make(headers.Pairs, 0, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Name: value\"", h)
		}
		res = append(res, [2]string{name, strings.TrimSpace(value)})
	}
	return res, nil
}

func makeFetcher(opts Opts, browser fingerprint.Browser) (client.Fetcher, error) {
	switch opts.Engine {
	case "tls-client":
		tlsOpts := tlsclient.DefaultOptions(browser)
		if opts.Timeout > 0 {
			tlsOpts = append(tlsOpts, tls_client.WithTimeoutMilliseconds(timeoutMillis(opts.Timeout)))
		}
		f, err := tlsclient.New(nil, tlsOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to make tls-client engine: %w", err)
		}
		return f, nil
	case "", "net":
		return client.NewHTTPFetcher(&http.Client{Timeout: opts.Timeout}), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", opts.Engine)
	}
}

// timeoutMillis rounds up so a sub-millisecond timeout never turns into zero, which tls-client reads as none
func timeoutMillis(d time.Duration) int {
	return max(1, int((d+time.Millisecond-1)/time.Millisecond))
}

func printProfiles(out io.Writer) {
	name := color.New(color.FgCyan).SprintFunc()
	for _, b := range fingerprint.Browsers() {
		p, _ := fingerprint.Lookup(b)
		var oses []string
		for _, o := range p.OSes() {
			oses = append(oses, string(o))
		}
		versions := p.Versions()
		hints := ""
		if p.ChromiumFamily() {
			hints = " client-hints"
		}
		fmt.Fprintf(out, "%s %-18s %s..%s (%d versions)%s\n", name(fmt.Sprintf("%-8s", b)), strings.Join(oses, ","),
			versions[0], versions[len(versions)-1], len(versions), hints)
	}
}

func printHeaders(out io.Writer, h map[string]string) {
	name := color.New(color.FgCyan).SprintFunc()
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", name(k), h[k])
	}
}

func printResponse(out io.Writer, resp *http.Response, decode bool) error {
	status := color.New(color.FgGreen).SprintFunc()
	if resp.StatusCode >= http.StatusBadRequest {
		status = color.New(color.FgRed).SprintFunc()
	}
	fmt.Fprintf(out, "%s %s\n", resp.Proto, status(resp.Status))

	flat := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		flat[k] = strings.Join(v, ", ")
	}
	printHeaders(out, flat)
	fmt.Fprintln(out)

	body := io.ReadCloser(resp.Body)
	if decode {
		decoded, err := client.DecodeBody(resp)
		if err != nil {
			return fmt.Errorf("failed to decode body: %w", err)
		}
		body = decoded
	}
	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	return nil
}

func setupLog(dbg bool) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.Out(os.Stderr)}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
