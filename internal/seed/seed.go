/*
 * synacorvm - Seeded input stream for opcode `in`.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package seed implements the --seed-input CLI flag: a byte source
// that serves a recorded transcript file to opcode `in` before falling
// through to live standard input, the way a Synacor Challenge player
// replays a captured walkthrough without retyping it.
package seed

import (
	"bufio"
	"io"
)

// Reader is an io.ByteReader that drains seed first, then falls back
// to live for every subsequent read once seed is exhausted.
type Reader struct {
	seed    *bufio.Reader
	live    io.ByteReader
	drained bool
}

// New returns a Reader. seed may be nil, in which case every read goes
// straight to live (equivalent to not passing --seed-input at all).
func New(seed io.Reader, live io.ByteReader) *Reader {
	r := &Reader{live: live}
	if seed != nil {
		r.seed = bufio.NewReader(seed)
	} else {
		r.drained = true
	}
	return r
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if !r.drained {
		b, err := r.seed.ReadByte()
		if err == nil {
			return b, nil
		}
		r.drained = true
	}
	return r.live.ReadByte()
}
