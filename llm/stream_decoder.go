package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"iter"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	readChunkSize    = 4096
	maxLoggedLineLen = 256
)

// StreamDecoder turns a newline-delimited JSON byte stream into
// GenerationEvents. Chunk boundaries are independent of line and character
// boundaries: the UTF-8 transformer holds back incomplete multi-byte sequences
// and the decoder holds back incomplete lines until the next read.
//
// A decoder is single use. Once it reports io.EOF or an error it stays there.
type StreamDecoder struct {
	src     io.Reader
	chunk   []byte
	pending []byte
	lines   [][]byte
	readErr error
	eof     bool
	final   bool
}

// NewStreamDecoder decodes r as UTF-8. A leading byte order mark is dropped.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	return &StreamDecoder{
		src:   transform.NewReader(r, unicode.UTF8BOM.NewDecoder()),
		chunk: make([]byte, readChunkSize),
	}
}

// Next returns the next well-formed event. It returns io.EOF once the stream
// is exhausted or after an event with IsFinal set has been returned. Read
// failures are returned as *TransportError, but only after every complete line
// received before the failure has been delivered.
func (d *StreamDecoder) Next() (GenerationEvent, error) {
	for {
		if d.final {
			return GenerationEvent{}, io.EOF
		}

		for len(d.lines) > 0 {
			line := d.lines[0]
			d.lines = d.lines[1:]

			event, err := parseEvent(line)
			if err != nil {
				var malformed *MalformedEventError
				if errors.As(err, &malformed) {
					log.Warn().Err(malformed.Err).Str("line", truncateLine(malformed.Line)).Msg("Skipping malformed generation event")
				}
				continue
			}
			if event.Error != "" {
				d.final = true
				return event, &GenerationError{Message: event.Error}
			}
			if event.IsFinal {
				d.final = true
			}
			return event, nil
		}

		if d.readErr != nil {
			return GenerationEvent{}, d.readErr
		}
		if d.eof {
			return GenerationEvent{}, io.EOF
		}
		d.fill()
	}
}

// Events exposes the decoder as a lazy, finite sequence. Iteration stops after
// the first error is yielded. The sequence shares the decoder's state and
// cannot be restarted.
func (d *StreamDecoder) Events() iter.Seq2[GenerationEvent, error] {
	return func(yield func(GenerationEvent, error) bool) {
		for {
			event, err := d.Next()
			if err == io.EOF {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// fill performs exactly one read from the underlying stream.
func (d *StreamDecoder) fill() {
	n, err := d.src.Read(d.chunk)
	if n > 0 {
		d.pending = append(d.pending, d.chunk[:n]...)
		d.splitLines()
	}

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		d.eof = true
		if len(d.pending) > 0 {
			d.lines = append(d.lines, d.pending)
			d.pending = nil
		}
	default:
		d.readErr = &TransportError{Op: "read", Err: err}
	}
}

func (d *StreamDecoder) splitLines() {
	for {
		i := bytes.IndexByte(d.pending, '\n')
		if i < 0 {
			return
		}
		d.lines = append(d.lines, bytes.Clone(d.pending[:i]))
		d.pending = d.pending[i+1:]
	}
}

// parseEvent returns errSkipLine for blank lines and *MalformedEventError for
// anything that is not a single JSON object.
func parseEvent(line []byte) (GenerationEvent, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return GenerationEvent{}, errSkipLine
	}
	if trimmed[0] != '{' {
		return GenerationEvent{}, &MalformedEventError{Line: string(trimmed), Err: errors.New("not a JSON object")}
	}

	var event GenerationEvent
	if err := json.Unmarshal(trimmed, &event); err != nil {
		return GenerationEvent{}, &MalformedEventError{Line: string(trimmed), Err: err}
	}
	return event, nil
}

var errSkipLine = errors.New("blank line")

func truncateLine(line string) string {
	if len(line) <= maxLoggedLineLen {
		return line
	}
	return line[:maxLoggedLineLen] + "..."
}
