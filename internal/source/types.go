package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // индекс в FileSet
	// FileFlags encodes how the content of a file was obtained.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, stdin, facade callers).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the materialised UTF-8 content of one input together with
// its line index and content hash.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position. Column is counted in bytes.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Len returns the content size in bytes.
func (f *File) Len() uint32 {
	return uint32(len(f.Content)) //nolint:gosec // FileSet.Add rejects larger inputs
}

// Span returns the span covering the whole file.
func (f *File) Span() Span {
	return Span{File: f.ID, Start: 0, End: f.Len()}
}

// EOFSpan is the zero-length span placed right after the last byte.
func (f *File) EOFSpan() Span {
	n := f.Len()
	return Span{File: f.ID, Start: n, End: n}
}
