// Package events emits client-side activity events (order placed, checkout
// completed, status updated, order viewed) to a pluggable sink. Emission is
// best-effort: a sink failure is logged and never fails the user action.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/shophub/shopctl/internal/models"
)

const (
	EventOrderPlaced       = "order_placed"
	EventCheckoutCompleted = "checkout_completed"
	EventStatusUpdated     = "status_updated"
	EventOrderViewed       = "order_viewed"
	EventOrderDeleted      = "order_deleted"
	EventCartItemAdded     = "cart_item_added"
	EventCartItemRemoved   = "cart_item_removed"
	EventCartCleared       = "cart_cleared"
)

const defaultTopic = "shophub_client_events"

// ClientEvent is the wire shape written to every sink.
type ClientEvent struct {
	Timestamp int64  `json:"timestamp"`
	EventType string `json:"eventType"`
	UserID    string `json:"userId,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Sink interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// Emitter serializes events and forwards them to the configured sink. A nil
// Emitter is valid and drops everything, so callers don't branch on the
// events_enabled flag.
type Emitter struct {
	sink  Sink
	topic string
}

func NewEmitter(sink Sink, topic string) *Emitter {
	if topic == "" {
		topic = defaultTopic
	}
	return &Emitter{sink: sink, topic: topic}
}

func (e *Emitter) Emit(eventType string, ev ClientEvent) {
	if e == nil || e.sink == nil {
		return
	}
	ev.EventType = eventType
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error serializing event: %v", err)
		return
	}
	if err := e.sink.WriteMessage(e.topic, msg); err != nil {
		log.Printf("Failed to write event: %v", err)
	}
}

func (e *Emitter) EmitOrder(eventType string, order models.Order) {
	e.Emit(eventType, ClientEvent{
		UserID:  order.UserID,
		OrderID: order.OrderID,
		Status:  string(order.Status),
	})
}

func (e *Emitter) Close() error {
	if e == nil || e.sink == nil {
		return nil
	}
	return e.sink.Close()
}

type ConsoleSink struct{}

func (c *ConsoleSink) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	if _, err := os.Stdout.Write([]byte(output)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	_ = os.Stdout.Sync()
	return nil
}

func (c *ConsoleSink) Close() error { return nil }

// FileSink appends events as JSON lines, one file per topic.
type FileSink struct {
	basePath string
	files    map[string]*os.File
}

func NewFileSink(basePath string) *FileSink {
	return &FileSink{
		basePath: basePath,
		files:    make(map[string]*os.File),
	}
}

func (f *FileSink) WriteMessage(topic string, msg []byte) error {
	file, ok := f.files[topic]
	if !ok {
		if err := os.MkdirAll(f.basePath, os.ModePerm); err != nil {
			return err
		}
		var err error
		filename := filepath.Join(f.basePath, topic+".jsonl")
		file, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open file for topic %s: %w", topic, err)
		}
		f.files[topic] = file
	}
	if _, err := file.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (f *FileSink) Close() error {
	for _, file := range f.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}
