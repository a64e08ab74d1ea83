package publisher

// BufferWrite describes a single GPU buffer write targeting the matrix buffer of one level at a given byte offset.
type BufferWrite struct {
	Level  int
	Offset uint64
	Data   []byte
}
