package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spektr-org/batstats/command"
	"github.com/spektr-org/batstats/render"
)

// ============================================================================
// CONSOLE — Interactive command loop
// ============================================================================
// Reads a command name, prompts for each of its inputs, prints the result.
// "end" quits; "copy" puts the last printed result on the clipboard.
// ============================================================================

type console struct {
	dispatcher *command.Dispatcher
	year       int
	in         *bufio.Scanner
	out        io.Writer
	format     string
	chartDir   string

	copy func(string) error
	last string
}

func newConsole(d *command.Dispatcher, year int, in io.Reader, out io.Writer, format, chartDir string) *console {
	return &console{
		dispatcher: d,
		year:       year,
		in:         bufio.NewScanner(in),
		out:        out,
		format:     format,
		chartDir:   chartDir,
	}
}

func greeting(year int) string {
	all := command.All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = "'" + c.String() + "'"
	}
	return fmt.Sprintf("Greetings, this program analyzes and graphs %d MLB Data. ", year) +
		"Enter one of the following commands: " +
		strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1] + ": "
}

// run loops until "end" or end of input.
func (c *console) run() error {
	fmt.Fprint(c.out, greeting(c.year))
	for {
		line, ok := c.read()
		if !ok {
			return c.in.Err()
		}

		switch strings.ToLower(line) {
		case "end":
			return nil
		case "copy":
			c.copyLast()
		case "":
		default:
			c.execute(line)
		}
		fmt.Fprint(c.out, "Enter a command: ")
	}
}

func (c *console) read() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) execute(name string) {
	cmd, err := command.Parse(name)
	if err != nil {
		fmt.Fprintln(c.out, command.Message(cmd, err))
		return
	}

	args := command.Args{}
	for _, in := range cmd.Inputs() {
		fmt.Fprint(c.out, in.Prompt)
		v, ok := c.read()
		if !ok {
			return
		}
		if in.Validate != nil {
			if err := in.Validate(v); err != nil {
				fmt.Fprintln(c.out, command.Message(cmd, err))
				return
			}
		}
		args[in.Key] = v
	}

	res, err := c.dispatcher.Execute(cmd, args)
	if err != nil {
		fmt.Fprintln(c.out, command.Message(cmd, err))
		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, res, c.format); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	if cmd.IsGraph() && c.chartDir != "" {
		path, err := render.SavePNG(c.chartDir, cmd.String(), res.ChartConfig)
		if err != nil {
			fmt.Fprintf(&buf, "Chart not saved: %v\n", err)
		} else {
			fmt.Fprintf(&buf, "Chart saved to %s\n", path)
		}
	}

	c.last = buf.String()
	c.out.Write(buf.Bytes())
}

func (c *console) copyLast() {
	switch {
	case c.last == "":
		fmt.Fprintln(c.out, "Nothing to copy")
	case c.copy == nil:
		fmt.Fprintln(c.out, "Clipboard unavailable")
	default:
		if err := c.copy(c.last); err != nil {
			fmt.Fprintf(c.out, "Copy failed: %v\n", err)
			return
		}
		fmt.Fprintln(c.out, "Copied to clipboard")
	}
}
