package handler

import (
	"bytes"
	"sync"
)

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer drops oversized buffers so one large feed page does not pin memory
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

const maxPooledBuffer = 64 << 10
