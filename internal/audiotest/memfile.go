// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

// MemFile is an in-memory io.WriteSeeker for encoders that patch headers
// after writing the payload.
type MemFile struct {
	data []byte
	pos  int64
}

func (m *MemFile) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		m.data = append(m.data, make([]byte, end-int64(len(m.data)))...)
	}
	copy(m.data[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *MemFile) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = m.pos + offset
	case io.SeekEnd:
		next = int64(len(m.data)) + offset
	default:
		return 0, errors.New("audiotest: invalid whence")
	}
	if next < 0 {
		return 0, errors.New("audiotest: negative position")
	}
	m.pos = next
	return next, nil
}

// Bytes returns everything written so far.
func (m *MemFile) Bytes() []byte { return m.data }
