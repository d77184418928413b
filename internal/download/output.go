package download

import (
	"bytes"
	"sync"

	"github.com/sirupsen/logrus"
)

// MaxLogLineLen truncates overlong output lines before they are logged
const MaxLogLineLen = 512

// lineWriter logs every line written to it. Both '\n' and '\r' end a line since
// the downloader redraws its progress bar with carriage returns.
type lineWriter struct {
	mx     sync.Mutex
	logger *logrus.Entry
	level  logrus.Level
	buf    bytes.Buffer
}

func newLineWriter(logger *logrus.Entry, level logrus.Level) *lineWriter {
	return &lineWriter{logger: logger, level: level}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mx.Lock()
	defer w.mx.Unlock()

	for _, b := range p {
		if b == '\n' || b == '\r' {
			w.emit()
			continue
		}
		if w.buf.Len() < MaxLogLineLen {
			w.buf.WriteByte(b)
		}
	}
	return len(p), nil
}

// Flush logs a trailing line without terminator
func (w *lineWriter) Flush() {
	w.mx.Lock()
	defer w.mx.Unlock()
	w.emit()
}

func (w *lineWriter) emit() {
	if w.buf.Len() == 0 {
		return
	}
	w.logger.Log(w.level, w.buf.String())
	w.buf.Reset()
}
