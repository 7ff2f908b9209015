package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/peerlink-relay/internal/proto"
)

// Interactive probe for poking a running relay by hand:
//
//	join <room>
//	signal <room> <json payload>
//	pub <kind> <content>
//	sub <subId> <filter json>
//	close <subId>
func main() {
	if err := run(); err != nil {
		log.Printf("ws_probe: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3001/ws", "WebSocket address")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(v any) {
		if writeErr := wsjson.Write(ctx, conn, v); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	go func() {
		for {
			_, raw, readErr := conn.Read(ctx)
			if readErr != nil {
				if !errors.Is(readErr, context.Canceled) {
					log.Printf("read: %v", readErr)
				}
				cancel()
				return
			}
			fmt.Printf("<< %s\n", raw)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fields := strings.SplitN(strings.TrimSpace(scanner.Text()), " ", 3)
		switch fields[0] {
		case "join":
			if len(fields) < 2 {
				fmt.Println("usage: join <room>")
				continue
			}
			data, _ := json.Marshal(fields[1])
			send(proto.Inbound{Type: proto.InboundTypeJoinRoom, Data: data})
		case "signal":
			if len(fields) < 3 {
				fmt.Println("usage: signal <room> <json payload>")
				continue
			}
			data, _ := json.Marshal(proto.SendSignalData{
				RoomID:     fields[1],
				SignalData: json.RawMessage(fields[2]),
			})
			send(proto.Inbound{Type: proto.InboundTypeSendSignal, Data: data})
		case "pub":
			if len(fields) < 3 {
				fmt.Println("usage: pub <kind> <content>")
				continue
			}
			kind, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				fmt.Println("kind must be an integer")
				continue
			}
			send([]any{proto.VerbEvent, map[string]any{
				"id":      fmt.Sprintf("probe-%d", os.Getpid()),
				"kind":    kind,
				"pubkey":  "probe",
				"content": fields[2],
			}})
		case "sub":
			if len(fields) < 3 {
				fmt.Println("usage: sub <subId> <filter json>")
				continue
			}
			send([]any{proto.VerbReq, fields[1], json.RawMessage(fields[2])})
		case "close":
			if len(fields) < 2 {
				fmt.Println("usage: close <subId>")
				continue
			}
			send([]any{proto.VerbClose, fields[1]})
		case "":
		default:
			fmt.Println("commands: join, signal, pub, sub, close")
		}
	}
	return scanner.Err()
}
