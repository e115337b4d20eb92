// Command sink runs a local ingest endpoint that accepts the agent's
// POST /series payloads and logs what arrived. Development tool only.
package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/vshulcz/Telemetra/internal/misc"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	addr := misc.Getenv("HTTP_ADDR", "localhost:8080")
	key := misc.Getenv("API_KEY", "")

	h := NewHandler(logger, key)
	r := NewRouter(h, logger)

	logger.Info("sink started", zap.String("addr", addr), zap.Bool("key_required", key != ""))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
