// Package mmap provides read-only memory-mapped file access.
//
// The directory resolver serves asset files through a Mapping so that readers
// decoding large assets (textures, audio banks) do not copy the file through
// kernel buffers before parsing it.
//
// # Usage
//
//	m, err := mmap.Open("sounds/explosion.wav")
//	if err != nil { ... }
//	r := m.NewReader() // io.ReadSeekCloser, Close unmaps
//	defer r.Close()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (advice is a no-op)
//
// Close is idempotent. Callers must not touch Bytes() after Close returns.
package mmap
