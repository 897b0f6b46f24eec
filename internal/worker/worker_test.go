package worker

import (
	"context"
	"io"
	"testing"
	"time"

	"crickstore/internal/config"
	"crickstore/internal/logger"
	"crickstore/internal/worker/processors"

	"github.com/segmentio/kafka-go"
)

// stubReader hands out its fixed messages, then behaves like a closed
// kafka.Reader.
type stubReader struct {
	messages []kafka.Message
}

func (s *stubReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(s.messages) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := s.messages[0]
	s.messages = s.messages[1:]
	return m, nil
}

func (s *stubReader) Close() error { return nil }

func TestStartStopsWhenReaderCloses(t *testing.T) {
	cfg := &config.Config{}
	log := logger.New("error")

	w := &Worker{
		config: cfg,
		logger: log,
		reader: &stubReader{messages: []kafka.Message{
			{Value: []byte(`{"type":"product.imported","data":{"name":"SG Test Bat"}}`)},
		}},
		processor: processors.NewEventProcessor(cfg, log),
	}

	done := make(chan struct{})
	go func() {
		w.Start()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker loop kept running after the reader was closed")
	}
}
