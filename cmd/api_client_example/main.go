package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the dashboard status API")
	wait := flag.Duration("wait", 5*time.Second, "How long to wait for the first refresh")
	flag.Parse()

	fmt.Println("Weather Dashboard API Client Example")
	fmt.Println("====================================")

	client := &http.Client{Timeout: 10 * time.Second}

	// Poll the status endpoint until the dashboard has published data
	fmt.Println("Waiting for the dashboard to complete a refresh...")
	deadline := time.Now().Add(*wait)
	var status map[string]interface{}
	for {
		code, body, err := get(client, *baseURL+"/api/status")
		if err != nil {
			fmt.Printf("Error fetching status: %v\n", err)
			os.Exit(1)
		}
		if code == http.StatusOK {
			json.Unmarshal(body, &status)
			if status["status"] == "ready" || time.Now().After(deadline) {
				break
			}
		} else if time.Now().After(deadline) {
			fmt.Printf("Dashboard has not published any data yet (HTTP %d)\n", code)
			return
		}
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Printf("\nStatus for %v: %v\n", status["location"], status["status"])

	for _, path := range []string{"/api/weather", "/api/forecast/0"} {
		code, body, err := get(client, *baseURL+path)
		if err != nil {
			fmt.Printf("Error fetching %s: %v\n", path, err)
			os.Exit(1)
		}

		// Parse the JSON for pretty printing
		var data map[string]interface{}
		json.Unmarshal(body, &data)

		prettyJSON, _ := json.MarshalIndent(data, "", "  ")
		fmt.Printf("\n%s (HTTP %d):\n%s\n", path, code, string(prettyJSON))
	}
}

func get(client *http.Client, url string) (int, []byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}
