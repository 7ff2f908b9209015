package core

import (
	"context"
	"fmt"
	"testing"
)

func benchmarkPublishFanOut(b *testing.B, subscribers int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := NewRouter(testLogger())
	go router.Run(ctx)

	sender := NewConn("sender", 0)
	router.Register(sender)

	subs := make([]*Conn, 0, subscribers)
	for i := range subscribers {
		c := NewConn(fmt.Sprintf("sub-%d", i), 0)
		router.Register(c)
		c.Commands <- &Command{Kind: CommandSubscribe, SubID: "s1", Filter: &Filter{Kinds: []int{1}}}
		subs = append(subs, c)
	}

	// Drain all but the first subscriber to avoid channel backpressure.
	target := subs[0]
	for _, c := range subs[1:] {
		go func(cl *Conn) {
			for range cl.Events {
			}
		}(c)
	}
	go func() {
		for range sender.Events {
		}
	}()

	note := &Note{ID: "bench", Kind: 1, PubKey: "A"}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandPublish, Note: note}
		for ev := range target.Events {
			if ev.Kind == EventNote {
				break
			}
		}
	}
}

func BenchmarkPublishFanOut_10(b *testing.B)  { benchmarkPublishFanOut(b, 10) }
func BenchmarkPublishFanOut_100(b *testing.B) { benchmarkPublishFanOut(b, 100) }
func BenchmarkPublishFanOut_500(b *testing.B) { benchmarkPublishFanOut(b, 500) }
