package eventx

import "context"

// NotifyChannel returns a listener that forwards each round's argument to ch.
// The forward waits until the channel accepts the value or ctx is cancelled,
// so a full channel with no reader stalls the round. Use NotifyChannelDrop
// when losing values is preferable to backpressure.
func NotifyChannel[T any](ch chan<- T) Listener[T] {
	return &chanListener[T]{ch: ch}
}

// NotifyChannelDrop returns a listener that forwards each round's argument to
// ch without blocking, dropping the value when the channel is full.
func NotifyChannelDrop[T any](ch chan<- T) Listener[T] {
	return &chanListener[T]{ch: ch, drop: true}
}

// Pump invokes a round for every value received from ch, in receive order.
// It returns nil when ch closes, ctx.Err() when ctx is cancelled first, or
// the first failed round's error. Any receivable channel works as a feed;
// a time.Ticker's C turns an Event[time.Time] into a heartbeat.
func Pump[T any](ctx context.Context, e *Event[T], ch <-chan T) error {
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return nil
			}
			if err := e.Invoke(ctx, v); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type chanListener[T any] struct {
	ch   chan<- T
	drop bool
}

func (l *chanListener[T]) Handle(ctx context.Context, arg T) error {
	if l.drop {
		select {
		case l.ch <- arg:
		default:
			// Non-blocking drop
		}
		return nil
	}
	select {
	case l.ch <- arg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
