package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"telegram-update-normalizer/internal/client"
)

func main() {
	var (
		serverAddr string
		pageSize   int
		interval   time.Duration
		sync       bool
		hash       string
	)
	flag.StringVar(&serverAddr, "server", "http://localhost:8080", "Server address")
	flag.IntVar(&pageSize, "page-size", 50, "Result page size")
	flag.DurationVar(&interval, "interval", 2*time.Second, "Task polling interval")
	flag.BoolVar(&sync, "sync", false, "Normalize a single file synchronously")
	flag.StringVar(&hash, "hash", "", "Fetch a cached result by the hash of an earlier upload")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.NewServerClient(serverAddr, 0)
	if hash != "" {
		started, err := c.ProcessByHash(ctx, hash)
		if err != nil {
			log.Fatal(err)
		}
		if err := waitAndPrint(ctx, c, started.TaskID, pageSize, interval); err != nil {
			log.Fatal(err)
		}
		return
	}

	filePaths := flag.Args()
	if len(filePaths) == 0 {
		log.Fatal("At least one file path is required. Usage: client [flags] <file1> <file2> ...")
	}

	if sync {
		if err := normalizeSync(ctx, c, filePaths[0]); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := processAsync(ctx, c, filePaths, pageSize, interval); err != nil {
		log.Fatal(err)
	}
}

func normalizeSync(ctx context.Context, c *client.ServerClient, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл %s: %w", path, err)
	}
	defer file.Close()

	resp, err := c.Normalize(ctx, file)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func processAsync(ctx context.Context, c *client.ServerClient, filePaths []string, pageSize int, interval time.Duration) error {
	files := make([]client.DocumentFile, 0, len(filePaths))
	for _, path := range filePaths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("не удалось открыть файл %s: %w", path, err)
		}
		defer f.Close()
		files = append(files, client.DocumentFile{Name: filepath.Base(path), Content: f})
	}

	started, err := c.StartTask(ctx, files)
	if err != nil {
		return err
	}
	fmt.Printf("Задача создана с идентификатором: %s, хеш данных: %s\n", started.TaskID, started.Hash)
	return waitAndPrint(ctx, c, started.TaskID, pageSize, interval)
}

func waitAndPrint(ctx context.Context, c *client.ServerClient, taskID string, pageSize int, interval time.Duration) error {
	if _, err := c.WaitForTask(ctx, taskID, interval); err != nil {
		return err
	}
	fmt.Println("Задача выполнена успешно.")

	for page := 1; ; page++ {
		result, err := c.GetTaskResult(ctx, taskID, page, pageSize)
		if err != nil {
			return err
		}
		if err := printJSON(result); err != nil {
			return err
		}
		if page >= result.Pagination.TotalPages {
			return nil
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
