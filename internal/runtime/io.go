package runtime

import (
	"bufio"
	"bytes"
	"io"
)

// MaxLineLength is the longest line the scanner accepts.
const MaxLineLength = 64 * 1024 * 1024

// NewLineScanner returns a scanner that yields lines of r with the trailing
// newline removed. Unlike bufio.ScanLines a carriage return is kept, since
// it is part of the text the pattern sees.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	scanner.Split(ScanLines)
	return scanner
}

// ScanLines is a bufio.SplitFunc that splits on '\n' only.
// The final line is returned even without a terminating newline.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// IsBinary reports whether a content sample looks like binary data.
// A NUL byte anywhere in the sample marks the input as binary.
func IsBinary(sample []byte) bool {
	return bytes.IndexByte(sample, 0) >= 0
}
