// cmd/rtt-output/main.go
package main

import (
	"time"

	"microbit-go/rtt"
)

func main() {
	rtt.InitPrint()
	rtt.Println("RTT Example Started!")

	for n := 0; ; n++ {
		rtt.Printf("Count: %d\n", n)
		time.Sleep(time.Second)
	}
}
