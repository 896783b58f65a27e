// Package movie renders a verified solution into controller input
// streams for TAS tooling: the FCEUX TAS-editor paste format and the
// BizHawk (NesHawk core) TAStudio paste format, plus a human-readable
// per-move playback. The solver core knows nothing about frames; all
// timing here comes from a Timing configuration.
package movie

import (
	"fmt"
	"strings"

	"github.com/domino14/flipull/move"
	"github.com/domino14/flipull/problem"
	"github.com/domino14/flipull/solver"
)

// Input is one frame of joypad state. Only three buttons matter: A
// throws, Up and Down walk the hero between rows.
type Input uint8

const (
	InputNone Input = iota
	InputA
	InputUp
	InputDown
)

func (i Input) FCEUX() string {
	switch i {
	case InputA:
		return "A"
	case InputUp:
		return "U"
	case InputDown:
		return "D"
	}
	return ""
}

func (i Input) NesHawk() string {
	switch i {
	case InputA:
		return "|..|.......A|........|"
	case InputUp:
		return "|..|U.......|........|"
	case InputDown:
		return "|..|.D......|........|"
	}
	return "|..|........|........|"
}

// Timing holds the frame counts the game spends on each action. The
// defaults are conservative; tighten them against an emulator trace
// before submitting a movie.
type Timing struct {
	// HeroStepFrames is the cost of walking one row up or down,
	// including the frame the direction is pressed.
	HeroStepFrames int
	// ThrowBaseFrames is the fixed cost of a throw, including the frame
	// A is pressed.
	ThrowBaseFrames int
	// ThrowSquareFrames is the additional cost per square the thrown
	// block travels.
	ThrowSquareFrames int
}

func DefaultTiming() Timing {
	return Timing{
		HeroStepFrames:    8,
		ThrowBaseFrames:   16,
		ThrowSquareFrames: 4,
	}
}

// Render replays the solution and emits one Input per frame.
func Render(p *problem.Problem, sol *solver.Solution, t Timing) ([]Input, error) {
	pos, candidates := p.Position()

	var inputs []Input
	for i, src := range sol.SourceRows() {
		inputs = append(inputs, heroWalk(pos.HeroRow(), src, t)...)

		m, ok := candidateFor(candidates, src)
		if !ok {
			return nil, fmt.Errorf("move %d throws from row %d, which has no candidate", i, src)
		}
		next, travel, ok := pos.Apply(m)
		if !ok {
			return nil, fmt.Errorf("move %d is illegal: %s", i, m.ShortDescription())
		}

		inputs = append(inputs, InputA)
		wait := t.ThrowBaseFrames + t.ThrowSquareFrames*travel.Length - 1
		for f := 0; f < wait; f++ {
			inputs = append(inputs, InputNone)
		}

		pos = next
	}
	return inputs, nil
}

func heroWalk(from, to move.SourceRow, t Timing) []Input {
	step := InputDown
	n := int(to) - int(from)
	if n < 0 {
		step = InputUp
		n = -n
	}

	var inputs []Input
	for i := 0; i < n; i++ {
		inputs = append(inputs, step)
		for f := 0; f < t.HeroStepFrames-1; f++ {
			inputs = append(inputs, InputNone)
		}
	}
	return inputs
}

func candidateFor(candidates []move.Move, src move.SourceRow) (move.Move, bool) {
	for _, m := range candidates {
		if m.Src() == src {
			return m, true
		}
	}
	return move.Move{}, false
}

// FormatFCEUX emits the TAS-editor paste form: a "TAS <n>" header then
// one line per frame.
func FormatFCEUX(inputs []Input) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TAS %d\n", len(inputs))
	for _, in := range inputs {
		sb.WriteString(in.FCEUX())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatNesHawk emits the TAStudio paste form, one piano-roll line per
// frame.
func FormatNesHawk(inputs []Input) string {
	var sb strings.Builder
	for _, in := range inputs {
		sb.WriteString(in.NesHawk())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatPretty replays the solution and prints each intermediate
// position, for eyeballing a solve before encoding it.
func FormatPretty(p *problem.Problem, sol *solver.Solution) (string, error) {
	pos, candidates := p.Position()

	var sb strings.Builder
	sb.WriteString(pos.String())

	for i, src := range sol.SourceRows() {
		m, ok := candidateFor(candidates, src)
		if !ok {
			return "", fmt.Errorf("move %d throws from row %d, which has no candidate", i, src)
		}
		next, _, ok := pos.Apply(m)
		if !ok {
			return "", fmt.Errorf("move %d is illegal: %s", i, m.ShortDescription())
		}
		pos = next

		fmt.Fprintf(&sb, "\nmove %d: %s\n", i, m.ShortDescription())
		sb.WriteString(pos.String())
	}
	return sb.String(), nil
}
