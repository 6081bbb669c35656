package handler

import (
	"bytes"
	"sync"
)

const (
	// responseBufferSize fits a round view with a full table of participants
	responseBufferSize = 4 << 10
	// maxPooledBuffer keeps large history pages from pinning memory in the pool
	maxPooledBuffer = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
