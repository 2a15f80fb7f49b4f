package main

import "io"

// echo moves whatever is pending on in back out in upper case and reports
// how many bytes it handled.
func echo(out io.Writer, in io.Reader, buf []byte) int {
	n, _ := in.Read(buf)
	if n == 0 {
		return 0
	}
	for i, c := range buf[:n] {
		if 'a' <= c && c <= 'z' {
			buf[i] = c - 'a' + 'A'
		}
	}
	out.Write(buf[:n])
	return n
}
