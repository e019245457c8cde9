package semchan_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baxromumarov/semchan"
)

func ExampleNew() {
	ch := semchan.New[string](2)
	_ = ch.Send("hello")
	_ = ch.Send("world")

	for range 2 {
		v, _ := ch.Receive()
		fmt.Println(v)
	}
	// Output:
	// hello
	// world
}

func ExampleNew_rendezvous() {
	ch := semchan.New[int](0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		v, _ := ch.Receive()
		fmt.Println("received", v)
	}()

	// Send returns only after the receiver has the value.
	_ = ch.Send(42)
	<-done
	fmt.Println("sent")
	// Output:
	// received 42
	// sent
}

func ExampleChannel_Close() {
	ch := semchan.New[int](3)
	_ = ch.Send(1)
	_ = ch.Send(2)
	_ = ch.Close()

	fmt.Println(ch.Send(3))
	for {
		v, err := ch.Receive()
		if errors.Is(err, semchan.ErrClosed) {
			fmt.Println("drained")
			break
		}
		fmt.Println(v)
	}
	// Output:
	// semchan: channel closed
	// 1
	// 2
	// drained
}

func ExampleChannel_TrySend() {
	ch := semchan.New[int](1)
	fmt.Println(ch.TrySend(1))
	fmt.Println(ch.TrySend(2))
	fmt.Println(semchan.StatusOf(ch.TrySend(2)))
	// Output:
	// <nil>
	// semchan: channel full
	// channel full
}

func ExampleSelect() {
	orders := semchan.New[string](1, semchan.WithName("orders"))
	refunds := semchan.New[string](1, semchan.WithName("refunds"))
	_ = refunds.Send("refund #7")

	var msg string
	i, err := semchan.Select(
		semchan.RecvCase(orders, &msg),
		semchan.RecvCase(refunds, &msg),
	)
	fmt.Println(i, msg, err)
	// Output: 1 refund #7 <nil>
}

func ExampleSelectContext() {
	idle := semchan.New[int](1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var v int
	i, err := semchan.SelectContext(ctx, semchan.RecvCase(idle, &v))
	fmt.Println(i, err)
	// Output: -1 context deadline exceeded
}
