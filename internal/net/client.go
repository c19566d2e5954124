package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/dannyallover/dominion/internal/game"
)

// ErrInputClosed is returned when the local terminal closes mid-game.
var ErrInputClosed = errors.New("input closed")

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	in         *bufio.Reader
	out        io.Writer
	playerName string
}

// NewClient wraps an established connection. in and out are the terminal.
func NewClient(conn net.Conn, in io.Reader, out io.Writer, name string) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out, playerName: name}
}

// Connect connects to a server, sends the join handshake, and runs the REPL
// on stdin/stdout.
func Connect(ctx context.Context, addr, name string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(ClientMessage{Type: MsgJoin, Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")

	return NewClient(conn, os.Stdin, os.Stdout, name).RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively until the
// game ends.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgChoose:
			c.renderState(msg.State)
			c.renderQuery(msg.Query)
			line, err := c.readLine()
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: MsgSelection, Selection: line}); err != nil {
				return fmt.Errorf("send selection: %w", err)
			}

		case MsgChooseYesNo:
			fmt.Fprintf(c.out, "\n%s (y/n): ", msg.Prompt)
			answer, err := c.readYesNo()
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: MsgYesNo, Answer: answer}); err != nil {
				return fmt.Errorf("send yes_no: %w", err)
			}

		case MsgGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 10 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(s *game.Snapshot) {
	if s == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  Turn %d | %s | %s's turn\n", s.Turn, s.Phase, s.ActivePlayer)
	fmt.Fprintf(c.out, "║  %s (%d VP) vs opponent (%d VP)\n", s.Player, s.PlayerScore, s.OpponentScore)
	fmt.Fprintf(c.out, "║  Actions: %d  Buys: %d  Coins: %d\n", s.Actions, s.Buys, s.Coins)
	fmt.Fprintf(c.out, "║  Hand:    %s\n", formatCounts(s.Hand))
	fmt.Fprintf(c.out, "║  Deck: %d  Discard: %d  Trash: %d\n", total(s.Deck), total(s.Discard), total(s.Trash))
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
}

func (c *Client) renderQuery(q *game.Query) {
	if q == nil {
		return
	}
	fmt.Fprintf(c.out, "\n%s\n", q.Prompt)
	for _, o := range q.Options {
		line := fmt.Sprintf("  [%d] %s (%d, %s)", o.Index, o.Name, o.Cost, o.Types)
		if q.Kind == game.QueryBuy || q.Kind == game.QueryGain {
			line += fmt.Sprintf(" x%d", o.Count)
		}
		fmt.Fprintln(c.out, line)
	}
	var how []string
	if q.ByName {
		how = append(how, "a name")
	}
	if q.ByIndex {
		how = append(how, "an index")
	}
	if q.AllowSkip {
		how = append(how, "-1")
	}
	fmt.Fprintf(c.out, "Enter %s\n", strings.Join(how, " or "))
}

func (c *Client) readLine() (string, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err != nil {
			return "", ErrInputClosed
		}
	}
}

func (c *Client) readYesNo() (bool, error) {
	for {
		line, err := c.in.ReadString('\n')
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err != nil {
			return false, ErrInputClosed
		}
		fmt.Fprint(c.out, "Enter y or n: ")
	}
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "(empty)"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x%d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}

func total(counts map[string]int) int {
	n := 0
	for _, v := range counts {
		n += v
	}
	return n
}
