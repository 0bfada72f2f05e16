package main

import (
	"flag"
	"fmt"

	"github.com/dawnzzz/simple-sets/wire/client"
	"github.com/sirupsen/logrus"
)

var (
	host      string
	port      int
	keepalive int
)

func main() {
	flag.StringVar(&host, "h", "localhost", "the host of simple-sets server")
	flag.IntVar(&port, "p", 6479, "the port of simple-sets server")
	flag.IntVar(&keepalive, "k", 0, "heartbeat interval in seconds, 0 means no heartbeat")
	flag.Parse()

	addr := fmt.Sprintf("%v:%v", host, port)

	c, err := client.MakeCmdLineClient(addr, keepalive)
	if err != nil {
		logrus.Fatal("make client err, ", err)
	}

	c.StartCmdLine()
}
