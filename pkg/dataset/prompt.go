package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Answer is the default answer of a yes/no question.
type Answer string

const (
	AnswerNone = Answer("")
	AnswerYes  = Answer("yes")
	AnswerNo   = Answer("no")
)

var validAnswers = map[string]bool{
	"yes": true,
	"ye":  true,
	"y":   true,
	"no":  false,
	"n":   false,
}

// Prompter asks questions on an interactive terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// AskYesNo asks a single question, see Prompter.AskYesNo.
func AskYesNo(in io.Reader, out io.Writer, question string, defaultAnswer Answer) (bool, error) {
	return NewPrompter(in, out).AskYesNo(question, defaultAnswer)
}

// AskYesNo asks the question until a valid answer is given. An empty answer
// selects defaultAnswer, unless it is AnswerNone.
func (p *Prompter) AskYesNo(question string, defaultAnswer Answer) (bool, error) {
	var suffix string
	switch defaultAnswer {
	case AnswerNone:
		suffix = " [y/n] "
	case AnswerYes:
		suffix = " [Y/n] "
	case AnswerNo:
		suffix = " [y/N] "
	default:
		return false, ErrInvalidDefault{Default: defaultAnswer}
	}

	for {
		if _, err := fmt.Fprint(p.out, question+suffix); err != nil {
			return false, fmt.Errorf("unable to print the question: %w", err)
		}

		line, err := p.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return false, fmt.Errorf("unable to read the answer: %w", err)
		}
		choice := strings.ToLower(strings.TrimSpace(line))

		if choice == "" && defaultAnswer != AnswerNone {
			return validAnswers[string(defaultAnswer)], nil
		}
		if answer, ok := validAnswers[choice]; ok {
			return answer, nil
		}
		if err == io.EOF {
			return false, fmt.Errorf("unable to read the answer: %w", io.ErrUnexpectedEOF)
		}
		if _, err := fmt.Fprint(p.out, "Please respond with 'yes' or 'no' (or 'y' or 'n').\n"); err != nil {
			return false, fmt.Errorf("unable to print the hint: %w", err)
		}
	}
}
