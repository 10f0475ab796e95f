// Package eventx provides an awaitable multicast event for concurrent Go
// programs.
//
// An Event[T] keeps two listener sets with distinct execution disciplines:
//   - Sequential listeners run one at a time, in registration order
//   - Parallel listeners are all launched together and overlap freely
//
// One invocation round launches the parallel set, walks the sequential set in
// order, then waits for the parallel stragglers, so the round never returns
// with listener work still running. Rounds and mutations serialize on a
// single internal Gate: adding or removing a listener while a round is in
// flight parks until the round finishes and takes effect before the next one.
//
// # Example Usage
//
//	ev := eventx.New[string](eventx.WithName("greeter"))
//	hello := eventx.ListenerFunc(func(ctx context.Context, who string) error {
//		fmt.Println("hello,", who)
//		return nil
//	})
//	if err := ev.AddSequential(ctx, hello); err != nil {
//		return err
//	}
//	if err := ev.Invoke(ctx, "world"); err != nil {
//		return err
//	}
//
// Hand collaborators the Subscriber view of an event to let them register
// listeners without being able to fire rounds or clear the sets.
//
// The Gate type underlying Event is exported and usable on its own as a
// context-aware, non-reentrant lock.
package eventx
