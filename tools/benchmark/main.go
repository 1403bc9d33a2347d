package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

type Config struct {
	BaseURL     string
	Addresses   []string
	Requests    int
	Concurrency int
	Timeout     time.Duration
	OutputFile  string
}

type sample struct {
	latency time.Duration
	status  int
	count   int // tickets in the response
	err     error
}

type ticketsPayload struct {
	Count int `json:"count"`
}

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Benchmarking %s\n", cfg.BaseURL)
	fmt.Printf("  addresses:   %d\n", len(cfg.Addresses))
	fmt.Printf("  requests:    %d\n", cfg.Requests)
	fmt.Printf("  concurrency: %d\n\n", cfg.Concurrency)

	samples, elapsed := run(ctx, cfg)
	report := buildReport(cfg, samples, elapsed)
	fmt.Print(report)

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", cfg.OutputFile)
	}
}

func parseFlags() Config {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the ticket-indexer API")
	addresses := flag.String("addresses", "", "Comma-separated wallet addresses to query (required)")
	requests := flag.Int("n", 100, "Total number of requests")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-request timeout")
	output := flag.String("o", "", "Optional output file for the report")
	flag.Parse()

	if *addresses == "" {
		fmt.Fprintln(os.Stderr, "at least one wallet address is required (-addresses)")
		flag.Usage()
		os.Exit(2)
	}

	return Config{
		BaseURL:     strings.TrimRight(*baseURL, "/"),
		Addresses:   strings.Split(*addresses, ","),
		Requests:    *requests,
		Concurrency: *concurrency,
		Timeout:     *timeout,
		OutputFile:  *output,
	}
}

// run fires the configured number of requests across the worker pool and
// collects one sample per request
func run(ctx context.Context, cfg Config) ([]sample, time.Duration) {
	client := &http.Client{Timeout: cfg.Timeout}

	samples := make([]sample, cfg.Requests)
	var next atomic.Int64

	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= cfg.Requests || ctx.Err() != nil {
					return
				}
				address := cfg.Addresses[i%len(cfg.Addresses)]
				samples[i] = probe(ctx, client, cfg.BaseURL, address)
			}
		}()
	}
	wg.Wait()

	return samples, time.Since(start)
}

// probe performs one wallet ticket lookup and records its outcome
func probe(ctx context.Context, client *http.Client, baseURL, address string) sample {
	url := fmt.Sprintf("%s/api/v1/wallets/%s/tickets", baseURL, address)

	begin := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return sample{err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return sample{latency: time.Since(begin), err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	latency := time.Since(begin)
	if err != nil {
		return sample{latency: latency, status: resp.StatusCode, err: err}
	}

	var payload ticketsPayload
	_ = json.Unmarshal(body, &payload)

	return sample{latency: latency, status: resp.StatusCode, count: payload.Count}
}

// buildReport renders the collected samples as a markdown summary
func buildReport(cfg Config, samples []sample, elapsed time.Duration) string {
	var ok, failed int
	var latencies []time.Duration
	statusCounts := make(map[int]int)

	for _, s := range samples {
		if s.err != nil || s.status != http.StatusOK {
			failed++
		} else {
			ok++
		}
		if s.status != 0 {
			statusCounts[s.status]++
		}
		if s.err == nil {
			latencies = append(latencies, s.latency)
		}
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var b strings.Builder
	fmt.Fprintf(&b, "# Ticket lookup benchmark\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Requests | %d |\n", len(samples))
	fmt.Fprintf(&b, "| Succeeded | %d (%s) |\n", ok, percentageString(ok, len(samples)))
	fmt.Fprintf(&b, "| Failed | %d |\n", failed)
	fmt.Fprintf(&b, "| Elapsed | %s |\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "| Throughput | %s |\n", formatRate(len(samples), elapsed))

	if len(latencies) > 0 {
		fmt.Fprintf(&b, "| p50 | %s |\n", percentile(latencies, 50).Round(time.Millisecond))
		fmt.Fprintf(&b, "| p90 | %s |\n", percentile(latencies, 90).Round(time.Millisecond))
		fmt.Fprintf(&b, "| p99 | %s |\n", percentile(latencies, 99).Round(time.Millisecond))
		fmt.Fprintf(&b, "| max | %s |\n", latencies[len(latencies)-1].Round(time.Millisecond))
	}

	if len(statusCounts) > 0 {
		fmt.Fprintf(&b, "\n## Status codes\n\n")
		codes := make([]int, 0, len(statusCounts))
		for code := range statusCounts {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		for _, code := range codes {
			fmt.Fprintf(&b, "- %d: %d\n", code, statusCounts[code])
		}
	}

	return b.String()
}
