package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// PromptPayload is the body of generate-image and enhance-prompt
type PromptPayload struct {
	Prompt string `json:"prompt"`
}

// Response is the part of the API envelope the load test inspects
type Response struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	Code          int    `json:"code,omitempty"`
	CreditBalance *int64 `json:"creditBalance,omitempty"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	TokenStats         map[int]int    // requests per token index
	ScenarioStats      map[string]int // requests per scenario
	Lock               sync.Mutex
}

// Scenario is one kind of request the test can send
type Scenario struct {
	Name   string
	Method string
	Path   string
	Prompt string
}

var scenarios = map[string][]Scenario{
	"credits": {
		{"Credits GET", http.MethodGet, "/api/user/credits", ""},
		{"Credits POST", http.MethodPost, "/api/user/credits", ""},
	},
	"enhance": {
		{"Enhance short", http.MethodPost, "/api/image/enhance-prompt", "a cat"},
		{"Enhance long", http.MethodPost, "/api/image/enhance-prompt", "a lighthouse on a cliff during a storm"},
	},
	"generate": {
		{"Generate", http.MethodPost, "/api/image/generate-image", "a watercolor fox in a snowy forest"},
	},
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	tokensStr := flag.String("tokens", "", "Comma-separated list of bearer tokens to distribute load across")
	baseURL := flag.String("url", "http://localhost:4000", "Base URL for the API")
	scenarioName := flag.String("scenario", "credits", "Scenario set: credits, enhance, generate or mixed")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	var tokens []string
	for _, t := range strings.Split(*tokensStr, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		fmt.Println("At least one token is required (-tokens)")
		return
	}

	selected, ok := scenarios[*scenarioName]
	if *scenarioName == "mixed" {
		selected = append(append([]Scenario{}, scenarios["credits"]...), scenarios["enhance"]...)
		ok = true
	}
	if !ok {
		fmt.Printf("Unknown scenario %q\n", *scenarioName)
		return
	}
	if *totalRequests <= 0 || *concurrency <= 0 {
		fmt.Println("Concurrency and total requests must be positive")
		return
	}

	fmt.Printf("Load testing %s across %d tokens\n", *baseURL, len(tokens))
	fmt.Printf("Scenarios: %d (%s)\n", len(selected), *scenarioName)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		TokenStats:      make(map[int]int),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, tokens, selected, jobs, results, stats)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime
			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)
	printResults(stats)
}

func worker(baseURL string, delayMs int, tokens []string, selected []Scenario,
	jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{
		Timeout: 75 * time.Second,
	}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		tokenIdx := rand.Intn(len(tokens))
		scenario := selected[rand.Intn(len(selected))]

		stats.Lock.Lock()
		stats.TokenStats[tokenIdx]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		req, err := newRequest(baseURL, tokens[tokenIdx], scenario)
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := TestResult{ResponseTime: responseTime}
		if err != nil {
			result.Error = err
			results <- result
			continue
		}

		result.StatusCode = resp.StatusCode
		result.Success, result.Error = readOutcome(resp)
		resp.Body.Close()

		results <- result
	}
}

func newRequest(baseURL, token string, s Scenario) (*http.Request, error) {
	var body io.Reader
	if s.Method == http.MethodPost {
		payload := PromptPayload{Prompt: s.Prompt}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(s.Method, baseURL+s.Path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", token)
	return req, nil
}

// readOutcome treats both the status code and the envelope's success flag as the verdict
func readOutcome(resp *http.Response) (bool, error) {
	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return true, nil
		}
		return false, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && envelope.Success {
		return true, nil
	}
	if envelope.Code != 0 {
		return false, fmt.Errorf("HTTP %d code %d", resp.StatusCode, envelope.Code)
	}
	return false, fmt.Errorf("HTTP %d %s", resp.StatusCode, envelope.Message)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func printResults(stats *TestStats) {
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)
		sort.Slice(sortedTimes, func(i, j int) bool { return sortedTimes[i] < sortedTimes[j] })

		p50 = percentile(sortedTimes, 50)
		p90 = percentile(sortedTimes, 90)
		p95 = percentile(sortedTimes, 95)
		p99 = percentile(sortedTimes, 99)
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw RPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Offered RPS:         %.2f (all requests / total time)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- TOKEN DISTRIBUTION -----------------")
	for idx, count := range stats.TokenStats {
		fmt.Printf("Token #%d:    %d requests (%.1f%%)\n", idx, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	if stats.FailedRequests > 0 {
		// code 4290 entries mean the per-user limiter kicked in, not a server fault
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
	fmt.Println("================================================")
}
