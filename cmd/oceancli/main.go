package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "oceancli",
		Usage: "talk to an ocean server from the terminal, as a board or a participant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   "ws://localhost:3000/ws",
				Usage:   "websocket endpoint of the server",
				EnvVars: []string{"OCEAN_ADDR"},
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "print frames as received instead of drawing oceans",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	conn, _, err := websocket.DefaultDialer.Dial(c.String("addr"), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.String("addr"), err)
	}
	defer conn.Close()

	go printFrames(conn, os.Stdout, c.Bool("raw"))

	fmt.Println("Enter commands as: action {json}   (example: createOcean {\"oId\":\"S\",\"config\":{\"carrierMinDist\":2}})")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			frame, perr := parseCommand(line)
			if perr != nil {
				fmt.Println("Bad command:", perr)
			} else if werr := conn.WriteMessage(websocket.TextMessage, frame); werr != nil {
				return fmt.Errorf("send: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func printFrames(conn *websocket.Conn, w io.Writer, raw bool) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintln(w, "\nconnection closed:", err)
			os.Exit(0)
		}
		printFrame(w, message, raw)
	}
}
