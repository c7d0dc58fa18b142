package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vultisig/safe-api-plugin/api"
	"github.com/vultisig/safe-api-plugin/config"
)

var configName string
var method string

// Usage:
// `go run ./scripts/dev/invoke_async/main.go -method=getNextNonce`
func main() {
	flag.StringVar(&configName, "config", "config", "server config name")
	flag.StringVar(&method, "method", "", "plugin method")
	flag.Parse()

	if method == "" {
		panic("method is required")
	}

	serverConfig, err := config.ReadConfig(configName)
	if err != nil {
		panic(err)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter the argument record as JSON: ")
	args, _ := reader.ReadString('\n')
	args = strings.TrimSpace(args)
	if args == "" {
		args = "{}"
	}
	if !json.Valid([]byte(args)) {
		panic("argument record is not valid JSON")
	}

	pluginHost := fmt.Sprintf("http://%s:%d", serverConfig.Server.Host, serverConfig.Server.Port)
	requestID := uuid.New().String()

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/plugin/invoke/%s/async", pluginHost, method), bytes.NewBufferString(args))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	fmt.Printf("Queueing %s on plugin server: %s (request %s)\n", method, pluginHost, requestID)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	var queued api.InvokeAsyncResponse
	err = json.NewDecoder(resp.Body).Decode(&queued)
	resp.Body.Close()
	if err != nil {
		panic(err)
	}
	fmt.Printf("Task queued: %s\n", queued.TaskID)

	for i := 0; i < 30; i++ {
		time.Sleep(time.Second)
		resp, err := http.Get(fmt.Sprintf("%s/plugin/invoke/result/%s", pluginHost, queued.TaskID))
		if err != nil {
			panic(err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			panic(err)
		}
		if resp.StatusCode == http.StatusAccepted {
			fmt.Println("Task is still in progress")
			continue
		}
		fmt.Printf("Result (%d): %s\n", resp.StatusCode, body)
		return
	}
	fmt.Println("Gave up waiting for the task")
}
