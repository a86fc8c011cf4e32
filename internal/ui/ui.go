package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const LinkColor = "#87CEEB"

type UI struct {
	In           io.Reader
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	colorEnabled := shouldEnableColor(output, mode, disableColor)
	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: colorEnabled,
	}
}

// ToErr returns a copy of u whose progress output goes to the error
// stream, leaving standard output for machine-readable results.
func (u *UI) ToErr() *UI {
	c := *u
	c.Out = u.Err
	c.Output = u.ErrOutput
	return &c
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

// Fatalf prints a run-ending error as a single line on standard output.
func (u *UI) Fatalf(format string, args ...any) {
	u.println("1", format, args...)
}

func (u *UI) Printf(format string, args ...any) {
	fmt.Fprintf(u.Out, format, args...)
}

func (u *UI) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	if u.ColorEnabled {
		msg = u.ErrOutput.String(msg).Foreground(u.ErrOutput.Color("1")).String()
	}
	fmt.Fprintln(u.Err, msg)
}

// Warnf, Infof and Successf print run progress on standard output.
func (u *UI) Warnf(format string, args ...any) {
	u.println("3", format, args...)
}

func (u *UI) Infof(format string, args ...any) {
	u.println("4", format, args...)
}

func (u *UI) Successf(format string, args ...any) {
	u.println("2", format, args...)
}

func (u *UI) println(color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = u.Output.String(msg).Foreground(u.Output.Color(color)).String()
	}
	fmt.Fprintln(u.Out, msg)
}

func ColorizeLink(output *termenv.Output, enabled bool, text string) string {
	if !enabled || output == nil {
		return text
	}
	return output.String(text).Foreground(output.Color(LinkColor)).String()
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}

const (
	ConfirmPrompt = "Type in y/[n]: "
	ConfirmRetry  = "Did not understand your input. Try again!"
)

type promptLine struct {
	text string
	err  error
}

// Confirm asks until it reads "y" (true), "n" or an empty line (false).
// End of input counts as an empty line. A cancelled ctx ends the prompt
// with ctx.Err() even while a read is pending.
func (u *UI) Confirm(ctx context.Context) (bool, error) {
	in := u.In
	if in == nil {
		in = os.Stdin
	}
	lines := readLines(ctx, in)

	for {
		u.Printf("%s", ConfirmPrompt)

		var line promptLine
		select {
		case <-ctx.Done():
			fmt.Fprintln(u.Out)
			return false, ctx.Err()
		case line = <-lines:
		}
		if line.err != nil && !errors.Is(line.err, io.EOF) {
			return false, line.err
		}

		switch strings.TrimRight(line.text, "\r\n") {
		case "y":
			return true, nil
		case "n", "":
			return false, nil
		}
		if errors.Is(line.err, io.EOF) {
			return false, nil
		}
		fmt.Fprintln(u.Out, ConfirmRetry)
	}
}

// readLines feeds lines from in until a read fails or ctx is done. The
// goroutine stays parked in Read if in never returns.
func readLines(ctx context.Context, in io.Reader) <-chan promptLine {
	lines := make(chan promptLine)
	go func() {
		reader := bufio.NewReader(in)
		for {
			text, err := reader.ReadString('\n')
			select {
			case lines <- promptLine{text: text, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}
