// Package chanx provides context-aware helpers built on [semchan.Channel]
// and [semchan.Select].
//
// semchan channels report closure as an error instead of panicking, so
// the helpers here turn those errors into the shapes pipelines want:
//
//   - [Send] and [Recv]: context-aware send and receive; Recv reports a
//     closed channel as ok == false instead of an error.
//   - [SendBatch] and [RecvBatch]: send or receive multiple values in one
//     call, stopping early on cancellation or channel close.
//   - [Merge]: fan-in that selects over several inputs and forwards every
//     value to one output.
//   - [FanOut]: hands each value of one input to whichever output is
//     ready first.
//   - [First]: returns the first value from any of several channels.
//   - [OrDone]: bridges a channel to a native receive channel that
//     respects context cancellation.
//   - [Drain]: discards remaining values until the channel is closed.
//
// Functions that spawn goroutines tie them to a [context.Context],
// ensuring they terminate when the context is canceled.
package chanx
