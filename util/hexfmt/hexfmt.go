/*
 * synacorvm - Format words as hex, for the debugger's memory/registers/stack commands.
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

// Package hexfmt formats 16-bit words as hex digits, the teacher's
// util/hex trimmed to the one shape this VM needs: whole 16-bit words,
// since there is no byte/halfword/displacement split to draw (the
// teacher's variant covers IBM 370's mixed-width instruction fields).
package hexfmt

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatWord appends the four hex digits of word to str.
func FormatWord(str *strings.Builder, word uint16) {
	shift := 12
	for range 4 {
		str.WriteByte(hexMap[(word>>shift)&0xf])
		shift -= 4
	}
}

// FormatWords appends the hex digits of each word in words to str,
// space-separated.
func FormatWords(str *strings.Builder, words []uint16) {
	for i, w := range words {
		if i > 0 {
			str.WriteByte(' ')
		}
		FormatWord(str, w)
	}
}
