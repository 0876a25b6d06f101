package dagcbor

import "io"

// Sink is the minimal destination EncodeInto writes a value's complete
// encoding to. Any io.Writer satisfies it; it exists as its own name so
// callers and mocks read as encode-specific rather than generic I/O.
type Sink interface {
	Write(p []byte) (int, error)
}

// Source is the minimal origin DecodeReader reads a value's complete
// encoding from. The core codec never parses partially-buffered input: a
// Source is drained fully before any decoding begins (spec §6 -- "the
// core encode/decode routines operate on byte slices ... Sink/Source are
// thin adapters, not a chunked parser").
type Source interface {
	Read(p []byte) (int, error)
}

// DecodeReader drains src fully, then decodes exactly one value from the
// result, rejecting trailing bytes.
func DecodeReader(src Source, d *Decoder) (Value, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)

	if _, err := bb.ReadFrom(asReader(src)); err != nil {
		return Value{}, err
	}
	if d == nil {
		d = &Decoder{}
	}
	data := make([]byte, bb.Len())
	copy(data, bb.Bytes())
	return d.Decode(data)
}

// asReader adapts a Source to io.Reader for ByteBuffer.ReadFrom, which
// wants the richer interface's io.EOF-terminated contract.
func asReader(src Source) io.Reader {
	if r, ok := src.(io.Reader); ok {
		return r
	}
	return readerFunc(src.Read)
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
