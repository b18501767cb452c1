// ABOUTME: REPL mode reading commands line by line from standard input
// ABOUTME: Prints responses and answers search selections with the following line

package main

import (
	"bufio"
	"fmt"
	"io"

	"video-player/command"
)

var welcome = []string{
	"Hello and welcome to YouTube, what would you like to do?",
	"Enter HELP for list of available commands or EXIT to terminate.",
}

// RunREPL executes commands read from in until EXIT or end of input.
// The prompt is only written when interactive is set.
func RunREPL(in io.Reader, out io.Writer, d *command.Dispatcher, prompt string, interactive bool) error {
	scanner := bufio.NewScanner(in)

	if err := writeLines(out, welcome); err != nil {
		return err
	}

	readLine := func() (string, bool) {
		if interactive {
			if _, err := fmt.Fprint(out, prompt); err != nil {
				return "", false
			}
		}

		if !scanner.Scan() {
			return "", false
		}

		return scanner.Text(), true
	}

	for {
		line, ok := readLine()
		if !ok {
			break
		}

		resp := d.Execute(line)
		if err := writeLines(out, resp.Lines); err != nil {
			return err
		}

		if resp.Choices != nil {
			answer, ok := readLine()
			if !ok {
				break
			}

			if err := writeLines(out, d.Choose(resp.Choices, answer).Lines); err != nil {
				return err
			}
		}

		if resp.Quit {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func writeLines(out io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(out, l); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return nil
}
