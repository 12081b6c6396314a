package handlers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"Lumen/commands"
	"Lumen/session"
)

const (
	consolePrompt = "> "
	exitCommand   = "EXIT"
)

// Console is the line based surface for a single local session
type Console struct {
	Commands *commands.Commands
	Session  *session.Session
	In       io.Reader
	Out      io.Writer
}

// Run reads commands until EXIT, end of input or ctx is cancelled
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.Out, "Hello and welcome to Lumen, what would you like to do?")
	fmt.Fprintln(c.Out, "Enter HELP for list of available commands or EXIT to terminate.")

	scanner := bufio.NewScanner(c.In)
	awaitingSelection := false
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !awaitingSelection {
			fmt.Fprint(c.Out, consolePrompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		if !awaitingSelection && strings.EqualFold(strings.TrimSpace(line), exitCommand) {
			break
		}

		resp := c.Commands.Handle(ctx, c.Session, line)
		for _, l := range resp.Lines {
			fmt.Fprintln(c.Out, l)
		}
		awaitingSelection = len(resp.Choices) > 0
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Fprintln(c.Out, "Lumen has now terminated its execution. Thank you and goodbye!")
	return nil
}
