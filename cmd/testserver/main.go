//nolint:errcheck,forbidigo,gosec // test utility allows simpler error handling and direct output
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const path = "/api/user_api/homework_statuses/"

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	token := flag.String("token", "", "Expected OAuth token (any token is accepted when empty)")
	status := flag.Int("status", http.StatusOK, "HTTP status to respond with")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: testserver [options] <homeworks.json>")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	responsePath := args[0]
	if _, err := os.Stat(responsePath); os.IsNotExist(err) {
		log.Fatalf("Response file does not exist: %s", responsePath)
	}

	http.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if *token != "" && r.Header.Get("Authorization") != "OAuth "+*token {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"not_authenticated","message":"Учетные данные не были предоставлены.","source":"__response__"}`))
			log.Printf("Rejected request with Authorization=%q", r.Header.Get("Authorization"))
			return
		}

		from := r.URL.Query().Get("from_date")
		if _, err := strconv.ParseInt(from, 10, 64); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"error":"Wrong from_date format"},"code":"UnknownError","source":"__response__"}`))
			log.Printf("Rejected request with from_date=%q", from)
			return
		}

		serveJSONFile(w, responsePath, *status)
		log.Printf("Served from_date=%s", from)
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Test server listening on %s", addr)
	log.Printf("Homework statuses: %s -> http://localhost%s%s", responsePath, addr, path)
	log.Println("\nThe file is read on each request, so you can edit it while the server is running.")
	log.Println(`Use "current_date": 0 to have the server substitute the current unix time.`)

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func serveJSONFile(w http.ResponseWriter, path string, status int) {
	content, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read file: %v", err), http.StatusInternalServerError)
		log.Printf("Error reading %s: %v", path, err)
		return
	}

	content = substituteCurrentDate(content)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(content)
}

func substituteCurrentDate(content []byte) []byte {
	now := `"current_date": ` + strconv.FormatInt(time.Now().Unix(), 10)
	return bytes.Replace(content, []byte(`"current_date": 0`), []byte(now), 1)
}
