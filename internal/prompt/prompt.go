// Package prompt is the interactive front of the create and clear
// commands: it asks each choice on a line-based terminal and re-asks until
// the answer passes validation.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ivlev/bulkanim/internal/anim"
	"github.com/ivlev/bulkanim/internal/bounds"
	"github.com/ivlev/bulkanim/internal/engine"
	"github.com/ivlev/bulkanim/internal/fault"
)

// Prompter implements engine.Front over a reader and writer. Entering "q"
// or closing the input aborts the run.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ engine.Front = (*Prompter)(nil)

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ask prints question with its default and returns the trimmed answer, or
// def when the line is empty.
func (p *Prompter) ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if !errors.Is(err, io.EOF) {
			log.Warn().Err(err).Msg("failed to read input")
		}
		fmt.Fprintln(p.out)
		return "", engine.ErrAborted
	}

	answer := strings.TrimSpace(line)
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "q", "quit":
		return "", engine.ErrAborted
	}
	return answer, nil
}

func (p *Prompter) askInt(question string, def int) (int, error) {
	for {
		answer, err := p.ask(question, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil {
			return n, nil
		}
		p.alert("%q is not a whole number", answer)
	}
}

func (p *Prompter) alert(format string, args ...any) {
	fmt.Fprintf(p.out, "[!] "+format+"\n", args...)
}

func (p *Prompter) confirm(question string) (bool, error) {
	for {
		answer, err := p.ask(question+" (y/n)", "n")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.alert("answer y or n")
	}
}

func (p *Prompter) ConfirmOverwrite(animated int) (bool, error) {
	return p.confirm(fmt.Sprintf("%d selected tile(s) already have animations. These will be replaced. Continue?", animated))
}

func (p *Prompter) ConfirmClear(animated int) (bool, error) {
	return p.confirm(fmt.Sprintf("%d tile(s) will lose their animations. Are you sure?", animated))
}

func (p *Prompter) Direction(def bounds.Direction) (bounds.Direction, error) {
	for {
		answer, err := p.ask("Direction of the frames: r(ight), d(own) or b(oth)", def.String())
		if err != nil {
			return def, err
		}
		d, err := bounds.ParseDirection(answer)
		if err == nil {
			return d, nil
		}
		p.alert("unknown direction %q", answer)
	}
}

// Strides asks for each axis d uses. An axis with no room left cannot be
// answered and its validation error is returned as is.
func (p *Prompter) Strides(d bounds.Direction, calc bounds.Calculator) (int, int, error) {
	right, down := calc.DefaultStride()
	maxRight, maxDown := calc.MaxStride()

	var err error
	if d.UsesRight() {
		right, err = p.stride("Stride to the right", right, maxRight, func(n int) error {
			return calc.ValidateStride(bounds.Right, n, 1)
		})
		if err != nil {
			return 0, 0, err
		}
	}
	if d.UsesDown() {
		down, err = p.stride("Stride downwards", down, maxDown, func(n int) error {
			return calc.ValidateStride(bounds.Down, 1, n)
		})
		if err != nil {
			return 0, 0, err
		}
	}
	return right, down, nil
}

func (p *Prompter) stride(question string, def, limit int, check func(int) error) (int, error) {
	if limit <= 0 {
		return 0, check(1)
	}
	def = min(def, limit)
	for {
		n, err := p.askInt(fmt.Sprintf("%s (1-%d)", question, limit), def)
		if err != nil {
			return 0, err
		}
		if err := check(n); err != nil {
			p.reject(err)
			continue
		}
		return n, nil
	}
}

func (p *Prompter) Frames(d bounds.Direction, calc bounds.Calculator, strideRight, strideDown int) (int, error) {
	limit := calc.MaxFrameCount(d, strideRight, strideDown)
	for {
		n, err := p.askInt(fmt.Sprintf("Number of frames, 0 for all (max %d)", limit), 0)
		if err != nil {
			return 0, err
		}
		if err := calc.ValidateFrameCount(d, strideRight, strideDown, n); err != nil {
			p.reject(err)
			continue
		}
		return n, nil
	}
}

func (p *Prompter) DurationMs(def int) (int, error) {
	if def <= 0 {
		def = anim.DefaultDurationMs
	}
	for {
		n, err := p.askInt("Duration of each frame in ms", def)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return n, nil
		}
		p.alert("duration must be greater than zero")
	}
}

func (p *Prompter) reject(err error) {
	fe, ok := fault.As(err)
	if !ok {
		p.alert("%v", err)
		return
	}
	switch {
	case fe.Value <= 0 && fe.Type == fault.ErrTypeInvalidStride:
		p.alert("%s", fe.Message)
	default:
		p.alert("%s, the maximum is %d", fe.Message, fe.Bound)
	}
}
