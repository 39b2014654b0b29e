package input

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"
)

// Reader turns lines from a terminal or a piped script into raw inputs
type Reader struct {
	device  Device
	scanner *bufio.Scanner
}

// NewReader reads lines from r. device records where the lines come from.
func NewReader(r io.Reader, device Device) *Reader {
	return &Reader{
		device:  device,
		scanner: bufio.NewScanner(r),
	}
}

// Next returns the next line as a raw input. It returns io.EOF once the
// input is exhausted.
func (r *Reader) Next() (RawInput, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return RawInput{}, err
		}
		return RawInput{}, io.EOF
	}
	return RawInput{
		Device:    r.device,
		Code:      strings.TrimRight(r.scanner.Text(), "\r"),
		Timestamp: time.Now(),
	}, nil
}

// Lines delivers raw inputs on a channel until the input ends or ctx is
// cancelled. The error channel receives the read error, or nil at EOF,
// and is closed afterwards.
func (r *Reader) Lines(ctx context.Context) (<-chan RawInput, <-chan error) {
	out := make(chan RawInput)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for {
			raw, err := r.Next()
			if err == io.EOF {
				errc <- nil
				return
			}
			if err != nil {
				errc <- err
				return
			}
			select {
			case out <- raw:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}
