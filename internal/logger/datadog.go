package logger

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	submitLogOperation = "v2.LogsApi.SubmitLog"
	dataDogSource      = "go"

	defaultDataDogTimeout = 5 * time.Second
	dataDogBufferSize     = 1024
	dataDogBatchSize      = 100
	dataDogFlushInterval  = 2 * time.Second
)

// DataDogWriter ships log lines to the Datadog v2 logs intake. Lines are
// queued and sent in batches by a background goroutine; when the queue is
// full new lines are dropped so logging never blocks on the network.
type DataDogWriter struct {
	api      *datadogV2.LogsApi
	ctx      context.Context //nolint:containedctx
	timeout  time.Duration
	service  string
	hostname string

	mu      sync.RWMutex
	closed  bool
	entries chan string
	done    chan struct{}
}

// NewDataDogWriter creates a writer for cfg.DataDog and starts its sender.
func NewDataDogWriter(cfg Log) *DataDogWriter {
	dd := cfg.DataDog

	timeout := dd.Timeout
	if timeout <= 0 {
		timeout = defaultDataDogTimeout
	}

	conf := datadog.NewConfiguration()
	conf.HTTPClient = &http.Client{Timeout: timeout}

	if len(dd.Servers) > 0 {
		conf.Servers = dd.Servers
		conf.OperationServers[submitLogOperation] = dd.Servers
	}

	ctx := context.WithValue(context.Background(), datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: dd.APIKey},
	})

	if dd.Site != "" && len(dd.Servers) == 0 {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": dd.Site})
	}

	service := dd.ServiceName
	if service == "" {
		service = cfg.ServiceName
	}

	hostname, _ := os.Hostname()

	w := &DataDogWriter{
		api:      datadogV2.NewLogsApi(datadog.NewAPIClient(conf)),
		ctx:      ctx,
		timeout:  timeout,
		service:  service,
		hostname: hostname,
		entries:  make(chan string, dataDogBufferSize),
		done:     make(chan struct{}),
	}

	go w.run()

	return w
}

// Write queues one log line.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return len(p), nil
	}

	select {
	case w.entries <- string(bytes.TrimRight(p, "\n")):
	default:
	}

	return len(p), nil
}

// Close sends the queued lines and stops the sender.
func (w *DataDogWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()

		return nil
	}

	w.closed = true
	close(w.entries)
	w.mu.Unlock()

	<-w.done

	return nil
}

func (w *DataDogWriter) run() {
	defer close(w.done)

	ticker := time.NewTicker(dataDogFlushInterval)
	defer ticker.Stop()

	batch := make([]string, 0, dataDogBatchSize)

	for {
		select {
		case line, ok := <-w.entries:
			if !ok {
				w.send(batch)

				return
			}

			batch = append(batch, line)
			if len(batch) >= dataDogBatchSize {
				w.send(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			w.send(batch)
			batch = batch[:0]
		}
	}
}

func (w *DataDogWriter) send(batch []string) {
	if len(batch) == 0 {
		return
	}

	items := make([]datadogV2.HTTPLogItem, len(batch))
	for i, line := range batch {
		item := datadogV2.NewHTTPLogItem(line)
		item.SetService(w.service)
		item.SetDdsource(dataDogSource)

		if w.hostname != "" {
			item.SetHostname(w.hostname)
		}

		items[i] = *item
	}

	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	// the global logger writes here, report on stderr to avoid a loop
	if _, _, err := w.api.SubmitLog(ctx, items); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "datadog: failed to submit %d log entries: %v\n", len(items), err)
	}
}
