// sample-client posts a small synthetic sales dataset to a running
// leakage-engine and prints the response, for local development.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type analyzeRequest struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "leakage-engine base URL")
	flag.Parse()

	payload := analyzeRequest{
		Columns: []string{"order_id", "customer_name", "product", "quantity", "revenue", "discount", "shipping_cost"},
		Rows: [][]any{
			{"1001", "Acme Corp", "Widget", 10, 500.0, 25.0, 12.0},
			{"1002", "Globex", "Widget", 5, 250.0, 0.0, 8.0},
			{"1003", "Initech", "Gadget", 0, 0.0, 0.0, 5.0},
			{"1004", "Acme Corp", "Gadget", -2, -120.0, 0.0, 5.0},
			{"1005", "Hooli", "Widget", 8, 400.0, 180.0, 10.0},
			{"1001", "Acme Corp", "Widget", 10, 500.0, 25.0, 12.0},
			{"1006", "Vandelay", "Gizmo", 3, nil, 0.0, 4.0},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("marshal payload: %v", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(baseURL+"/api/v1/analyze", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("post analyze: %v", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("analyze returned %d: %s", resp.StatusCode, out)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, out, "", "  "); err != nil {
		fmt.Println(string(out))
		return
	}
	if _, err := pretty.WriteTo(os.Stdout); err != nil {
		log.Fatal(err)
	}
	fmt.Println()
}
