// Command download fetches the Wikipedia corpus into the data directory.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/kataras/golog"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/config"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/loader"
)

func main() {
	cfg := config.Load()

	dataPath := flag.String("data", cfg.DataPath, "directory to write article files into")
	delay := flag.Duration("delay", time.Second, "pause between page fetches")
	flag.Parse()

	logger := log.NewGologLogger(golog.Default)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := loader.NewWikipediaDownloader(*dataPath,
		loader.WithDelay(*delay),
		loader.WithDownloadLogger(logger),
	)

	topics := loader.DefaultTopics()
	golog.Infof("downloading %d Wikipedia pages into %s", len(topics), *dataPath)

	written, err := d.Run(ctx, topics)
	if err != nil {
		golog.Fatalf("download aborted after %d pages: %v", written, err)
	}
	golog.Infof("done, %d pages saved", written)
}
