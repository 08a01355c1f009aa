package encoding

import "sync"

// 快照编码缓冲池，减少 GC 压力
var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 512)
		return &b
	},
}

// getBuffer retrieves an empty buffer from the pool
func getBuffer() *[]byte {
	return bufferPool.Get().(*[]byte)
}

// putBuffer returns a buffer to the pool; its capacity is preserved
func putBuffer(b *[]byte) {
	if b == nil {
		return
	}
	*b = (*b)[:0]
	bufferPool.Put(b)
}
