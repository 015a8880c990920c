// Package stream supplies input symbols to the matcher one rune at a time.
//
// String, Bytes and Runes return sequences that restart from the beginning on every
// range loop. Reader wraps a one-shot source.
package stream

import (
	"errors"
	"io"
	"iter"
	"unicode/utf8"
)

// String yields the runes of s.
func String(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}

// Bytes yields the UTF-8 decoded runes of b. Invalid encodings yield utf8.RuneError.
func Bytes(b []byte) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for len(b) > 0 {
			r, size := utf8.DecodeRune(b)
			if !yield(r) {
				return
			}
			b = b[size:]
		}
	}
}

// Runes yields rs in order.
func Runes(rs []rune) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range rs {
			if !yield(r) {
				return
			}
		}
	}
}

// ReaderStream reads runes from an io.RuneReader. It can be consumed once.
type ReaderStream struct {
	src io.RuneReader
	err error
}

// Reader wraps src. Iteration stops at io.EOF or at the first read error, which Err
// reports afterwards.
func Reader(src io.RuneReader) *ReaderStream {
	return &ReaderStream{src: src}
}

// All yields runes until the source is exhausted.
func (s *ReaderStream) All() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for {
			r, _, err := s.src.ReadRune()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					s.err = err
				}
				return
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Err returns the first non-EOF read error.
func (s *ReaderStream) Err() error {
	return s.err
}
