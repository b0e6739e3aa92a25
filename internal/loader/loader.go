/*
 * synacorvm - Program loader.
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

// Package loader reads a Synacor binary image — a flat little-endian
// stream of 16-bit words — into memory, enforcing the 32768-word
// address ceiling.
package loader

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/rcornwell/synacorvm/internal/vm"
)

// FromFile opens path and loads it the way FromReader does. The
// teacher's config-file parser (config/configparser) opens its input
// with a plain os.Open and a bufio.Reader; this does the same rather
// than reading the whole file into memory at once, so a corrupt or
// oversized binary is rejected as soon as the 32769th word is seen
// instead of after a full read.
func FromFile(path string) ([]uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader reads r to EOF as a sequence of little-endian uint16
// words and returns them. A single trailing odd byte is discarded, per
// spec.md §4.4 and §6. More than vm.M words is a
// *vm.ProgramTooLargeError.
//
// The original source swallows its final unpack failure with a
// blanket exception (spec.md §9); this is the explicit bounded
// read-to-EOF loop that replaces it.
func FromReader(r io.Reader) ([]uint16, error) {
	br := bufio.NewReader(r)
	words := make([]uint16, 0, vm.M)

	var buf [2]byte
	for {
		n, err := io.ReadFull(br, buf[:])
		if n == 2 {
			if len(words) >= vm.M {
				return nil, &vm.ProgramTooLargeError{Words: len(words) + 1}
			}
			words = append(words, binary.LittleEndian.Uint16(buf[:]))
			continue
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// EOF with zero bytes read is the clean end of stream; one
			// stray trailing byte (ErrUnexpectedEOF with n==1) is the
			// "odd trailing byte" spec.md §6 says to ignore.
			return words, nil
		}
		return nil, err
	}
}
