package mmap

import "errors"

// AccessPattern is an madvise hint for a mapping.
type AccessPattern int

const (
	AccessDefault AccessPattern = iota
	// AccessSequential suits streams that are read once front to back.
	AccessSequential
	AccessRandom
)

var (
	ErrClosed        = errors.New("mmap: mapping is closed")
	ErrInvalidSize   = errors.New("mmap: invalid file size")
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
