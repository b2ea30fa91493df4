package log

import (
	"bytes"
	"strings"
	"sync"
)

// Writer cuts a byte stream into lines and passes every complete line to a handler.
// Unlike Entry().Writer() it copes with chunks larger than 64K without linebreaks
// (see https://github.com/sirupsen/logrus/issues/564).
type Writer struct {
	handle  func(line string)
	pending bytes.Buffer
	mutex   sync.Mutex
}

// NewWriter returns a Writer calling handle once per line, line endings removed.
func NewWriter(handle func(line string)) *Writer {
	return &Writer{handle: handle}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for rest := p; len(rest) > 0; {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			w.pending.Write(rest)
			break
		}
		w.pending.Write(rest[:i])
		w.emit()
		rest = rest[i+1:]
	}
	return len(p), nil
}

func (w *Writer) emit() {
	line := strings.TrimSuffix(w.pending.String(), "\r")
	w.pending.Reset()
	w.handle(line)
}

// Flush passes a pending line without trailing linebreak to the handler.
func (w *Writer) Flush() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.pending.Len() > 0 {
		w.emit()
	}
}
