// Package semchan provides a typed, in-process message channel built
// from counting semaphores, with blocking, non-blocking and
// close-aware operations and a multi-channel select.
//
// # Channels
//
// [New] creates a [Channel] with a fixed capacity:
//
//	jobs := semchan.New[Job](16)              // buffered
//	handoff := semchan.New[*Conn](0)          // rendezvous
//
// A buffered channel accepts up to capacity values without a receiver
// and delivers them in FIFO order. A rendezvous channel has no storage:
// [Channel.Send] returns only after a receiver has taken the value, and
// no value is ever delivered to more than one receiver.
//
// Blocking operations are [Channel.Send] and [Channel.Receive], plus the
// context-aware [Channel.SendContext] / [Channel.ReceiveContext] and the
// timed [Channel.SendTimeout] / [Channel.ReceiveTimeout]. The
// non-blocking [Channel.TrySend] and [Channel.TryReceive] return
// [ErrFull] / [ErrEmpty] instead of waiting and change nothing when they
// fail.
//
// On a rendezvous channel the non-blocking operations need a live
// counterpart: TrySend succeeds only if a receiver is parked in a
// blocking receive, and TryReceive only if a sender has offered a value.
//
// # Closing
//
// [Channel.Close] is called once by the owner. It wakes every blocked
// goroutine; blocked and later sends fail with [ErrClosed]. Receives keep
// draining buffered values in order and then fail with [ErrClosed]. A
// second Close returns [ErrClosed].
//
// [Channel.Destroy] releases storage after Close once no goroutine can
// still use the channel. Destroying an open channel returns [ErrDestroy]
// and leaves it intact.
//
// # Select
//
// [Select] takes an ordered list of cases built with [SendCase] and
// [RecvCase] and performs exactly one of them:
//
//	var job Job
//	i, err := semchan.Select(
//	    semchan.RecvCase(urgent, &job),
//	    semchan.RecvCase(normal, &job),
//	)
//
// The first ready case in list order wins. When no case is ready, Select
// parks until one of the channels changes state; it never spins. A case
// on a closed channel ends the Select with [ErrClosed] and that case's
// index. [SelectContext] adds cancellation and [TrySelect] polls once.
//
// # Errors
//
// Every failure is one of the sentinel errors of this package, possibly
// wrapped in a [*CaseError] by Select. [StatusOf] maps an error to its
// [Status] code.
//
// # Observability
//
// Use [WithName] and [WithLogger] to label a channel and route its
// lifecycle logging to a logrus logger. [Channel.Stats] returns counters,
// and [Collector] exports them to Prometheus.
//
// # Channel Utilities
//
// The [github.com/baxromumarov/semchan/chanx] subpackage provides
// helpers built on channels and Select: Drain, OrDone, SendBatch,
// RecvBatch, Merge, FanOut and First.
package semchan
