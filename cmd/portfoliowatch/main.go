// Command main is a terminal client for the portfolio push stream. It dials
// the websocket endpoint for a user and prints every event as it arrives,
// which is handy when checking the push path without the mobile client.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:8460", "server host:port")
	userID := flag.Uint("user", 0, "user ID to subscribe for")
	flag.Parse()

	if *userID == 0 {
		log.Fatal("a --user ID is required")
	}

	u := url.URL{
		Scheme:   "ws",
		Host:     *addr,
		Path:     "/api/ws/portfolio",
		RawQuery: fmt.Sprintf("user_id=%d", *userID),
	}
	log.Printf("connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}

			// Re-indent for readability; fall back to the raw frame.
			var pretty map[string]interface{}
			if err := json.Unmarshal(message, &pretty); err == nil {
				if out, err := json.MarshalIndent(pretty, "", "  "); err == nil {
					fmt.Printf("%s %s\n", time.Now().Format("15:04:05"), out)
					continue
				}
			}
			fmt.Printf("%s %s\n", time.Now().Format("15:04:05"), message)
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("interrupt, closing connection")
		err := conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Printf("write close: %v", err)
			return
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
