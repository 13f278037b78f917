package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSPublisher sends events to NATS subjects as JSON payloads.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event for %s: %w", topic, err)
	}
	return p.conn.Publish(topic, data)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NATSSubscriber consumes raw event payloads from NATS subjects.
type NATSSubscriber struct {
	conn *nats.Conn
}

// NewNATSSubscriber connects with unlimited reconnect attempts. Callers can
// append nats.Option values, e.g. disconnect and reconnect handlers.
func NewNATSSubscriber(url string, opts ...nats.Option) (*NATSSubscriber, error) {
	base := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSSubscriber{conn: nc}, nil
}

// Subscribe delivers payloads for the topic on the returned channel. The
// topic may use NATS wildcards such as "seasonplan.>". The cancel function
// unsubscribes and closes the channel; it is safe to call more than once.
// Slow consumers lose messages rather than blocking the NATS client.
func (s *NATSSubscriber) Subscribe(topic string) (<-chan []byte, func(), error) {
	msgs := make(chan *nats.Msg, 64)
	sub, err := s.conn.ChanSubscribe(topic, msgs)
	if err != nil {
		return nil, nil, fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	// Make sure the server has registered the subscription before we return,
	// so publishes from other connections are already routed to it.
	if err := s.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, nil, fmt.Errorf("flushing subscription for %s: %w", topic, err)
	}

	out := make(chan []byte, 64)
	quit := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-quit:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- msg.Data:
				default:
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			_ = sub.Unsubscribe()
			close(quit)
		})
	}
	return out, cancel, nil
}

func (s *NATSSubscriber) Close() error {
	s.conn.Close()
	return nil
}
