package httpclient

import (
	"errors"
	"fmt"
	"io"
)

// ResponseTooLargeError is returned when a backend payload outgrows the
// configured byte cap.
type ResponseTooLargeError struct {
	Limit int64
}

func (e ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response body exceeded limit of %d bytes", e.Limit)
}

// IsResponseTooLarge reports whether err wraps a ResponseTooLargeError.
func IsResponseTooLarge(err error) bool {
	var limitErr ResponseTooLargeError
	return errors.As(err, &limitErr)
}

// ReadAllWithLimit drains r but refuses payloads larger than limit bytes.
// Quantum job and device listings are small; anything past the cap is a
// misbehaving backend, not data we want to buffer. A limit <= 0 disables
// the cap entirely.
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	// Read one byte past the cap so a body of exactly limit bytes passes.
	lr := &io.LimitedReader{R: r, N: limit + 1}
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ResponseTooLargeError{Limit: limit}
	}
	return data, nil
}
