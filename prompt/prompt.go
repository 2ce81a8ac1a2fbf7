// Package prompt asks the interactive questions of the generation mode.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// IoHandler writes questions and reads answers, one line at a time.
type IoHandler interface {
	Write(text string)
	Input() (string, error)
}

// Console is an IoHandler over a reader and a writer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a console handler.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Write prints text followed by a newline.
func (c *Console) Write(text string) {
	fmt.Fprintln(c.out, text)
}

// Input returns the next line without its line terminator. io.EOF is
// returned only when nothing was read.
func (c *Console) Input() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Optional asks question showing the default and returns the trimmed
// answer, or the default for an empty one.
func Optional(handler IoHandler, question, defaultValue string) (string, error) {
	handler.Write(fmt.Sprintf("%s (%s)", question, defaultValue))
	input, err := handler.Input()
	if err != nil {
		return "", err
	}
	if input = strings.TrimSpace(input); input == "" {
		return defaultValue, nil
	}
	return input, nil
}

// Choice asks until the answer is one of choices, case insensitively. An
// empty answer picks defaultValue when it is not empty.
func Choice(handler IoHandler, question string, defaultValue string, choices ...string) (string, error) {
	text := fmt.Sprintf("%s (%s)", question, strings.Join(choices, "/"))
	if defaultValue != "" {
		text = fmt.Sprintf("%s [%s]", text, defaultValue)
	}
	handler.Write(text)
	for {
		input, err := handler.Input()
		if err != nil {
			return "", err
		}
		input = strings.ToLower(strings.TrimSpace(input))
		if input == "" && defaultValue != "" {
			return defaultValue, nil
		}
		for _, choice := range choices {
			if input == choice {
				return choice, nil
			}
		}
	}
}

// Select asks until the answer is a valid selection of the given 1-based
// options and returns the chosen 0-based indices.
func Select(handler IoHandler, header string, options []string, question string) ([]int, error) {
	var text strings.Builder
	text.WriteString(header)
	text.WriteString("\n")
	for i, option := range options {
		fmt.Fprintf(&text, "%d %s\n", i+1, option)
	}
	text.WriteString(question)
	handler.Write(text.String())
	for {
		input, err := handler.Input()
		if err != nil {
			return nil, err
		}
		if indices, ok := ParseSelection(input, len(options)); ok {
			return indices, nil
		}
	}
}

// ParseSelection parses an answer to a selection over count options: "n" or
// "none" selects nothing, "a-b" selects an inclusive range in either order,
// and space separated numbers select those options. Indices are 0-based,
// sorted and unique.
func ParseSelection(input string, count int) ([]int, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	switch {
	case input == "n" || input == "none":
		return []int{}, true
	case input == "":
		return nil, false
	case strings.Contains(input, "-"):
		return parseRange(input, count)
	}
	return parseList(input, count)
}

func parseRange(input string, count int) ([]int, bool) {
	first, last, ok := strings.Cut(input, "-")
	if !ok {
		return nil, false
	}
	from, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return nil, false
	}
	to, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil {
		return nil, false
	}
	if from > to {
		from, to = to, from
	}
	if from < 1 || to > count {
		return nil, false
	}
	result := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		result = append(result, i-1)
	}
	return result, true
}

func parseList(input string, count int) ([]int, bool) {
	unique := map[int]bool{}
	for _, part := range strings.Fields(input) {
		index, err := strconv.Atoi(part)
		if err != nil || index < 1 || index > count {
			return nil, false
		}
		unique[index-1] = true
	}
	result := make([]int, 0, len(unique))
	for index := range unique {
		result = append(result, index)
	}
	sort.Ints(result)
	return result, true
}
