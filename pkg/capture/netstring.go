package capture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// maxFieldLen bounds a single field; the kernel's ARG_MAX keeps real
// environment values far below this.
const maxFieldLen = 1 << 30

// fieldReader reads netstrings from a buffered stream.
type fieldReader struct {
	r      *bufio.Reader
	offset int64
}

func newFieldReader(r io.Reader) *fieldReader {
	return &fieldReader{r: bufio.NewReader(r)}
}

// next returns the next field. It returns io.EOF only when the stream ends
// exactly on a field boundary.
func (fr *fieldReader) next() (string, error) {
	start := fr.offset
	var n int
	digits := 0
	for {
		c, err := fr.r.ReadByte()
		if err == io.EOF {
			if digits == 0 {
				return "", io.EOF
			}
			return "", fmt.Errorf("offset %d: stream ends inside a length prefix", start)
		}
		if err != nil {
			return "", err
		}
		fr.offset++
		if c == ':' {
			break
		}
		if c < '0' || c > '9' {
			return "", fmt.Errorf("offset %d: invalid byte %q in length prefix", fr.offset-1, c)
		}
		digits++
		if digits > 10 {
			return "", fmt.Errorf("offset %d: length prefix too long", start)
		}
		n = n*10 + int(c-'0')
	}
	if digits == 0 {
		return "", fmt.Errorf("offset %d: empty length prefix", start)
	}
	if n > maxFieldLen {
		return "", fmt.Errorf("offset %d: field length %d exceeds limit", start, n)
	}

	buf := make([]byte, n+1)
	if _, err := io.ReadFull(fr.r, buf); err != nil {
		return "", fmt.Errorf("offset %d: field of %d bytes is truncated", start, n)
	}
	fr.offset += int64(n + 1)
	if buf[n] != ',' {
		return "", fmt.Errorf("offset %d: field of %d bytes is not terminated by ','", start, n)
	}
	return string(buf[:n]), nil
}

// nextInt reads a field holding a non-negative decimal number.
func (fr *fieldReader) nextInt() (int, error) {
	s, err := fr.next()
	if err != nil {
		return 0, noEOF(err)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("offset %d: expected a count, got %q", fr.offset, s)
	}
	return n, nil
}

// must reads a field that has to be present.
func (fr *fieldReader) must() (string, error) {
	s, err := fr.next()
	return s, noEOF(err)
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// writeField appends one netstring to w.
func writeField(w io.Writer, s string) error {
	_, err := io.WriteString(w, strconv.Itoa(len(s))+":"+s+",")
	return err
}
