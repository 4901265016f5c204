package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

// fakeWriter records messages written.
type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	fw := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(fw)
	if err := p.Publish(context.Background(), "order-1", map[string]string{"status": "accepted"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(fw.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fw.msgs))
	}
	if string(fw.msgs[0].Key) != "order-1" {
		t.Fatalf("unexpected key %q", fw.msgs[0].Key)
	}
	var body map[string]string
	if err := json.Unmarshal(fw.msgs[0].Value, &body); err != nil || body["status"] != "accepted" {
		t.Fatalf("unexpected value %s", fw.msgs[0].Value)
	}
}

func TestPublish_WriterError(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: errors.New("broker down")})
	if err := p.Publish(context.Background(), "k", "v"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNew_NoBroker(t *testing.T) {
	if _, ok := New("", "order.events").(NoopPublisher); !ok {
		t.Fatal("expected NoopPublisher when broker is empty")
	}
}
