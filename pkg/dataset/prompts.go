package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadPrompts returns the lines to be read aloud, one utterance per line,
// lower-cased.
func ReadPrompts(r io.Reader) ([]string, error) {
	var result []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		result = append(result, strings.ToLower(strings.TrimRight(scanner.Text(), " \t\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read the prompts: %w", err)
	}
	return result, nil
}

func ReadPromptsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open '%s': %w", path, err)
	}
	defer f.Close()
	return ReadPrompts(f)
}
