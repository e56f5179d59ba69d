package model

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// ReadLines reads a whole file into memory. Every element keeps its own line
// terminator, so joining the result reproduces the file byte for byte. A
// final line without a newline is returned as is.
func ReadLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	err = EachLine(file, func(line string) bool {
		lines = append(lines, line)
		return true
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// EachLine calls fn for every raw line read from r, terminator included.
// Iteration stops early when fn returns false.
func EachLine(r io.Reader, fn func(line string) bool) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if !fn(line) {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// WriteLines truncates filePath and writes lines to it in order.
func WriteLines(filePath string, lines []string) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
	}
	return w.Flush()
}
