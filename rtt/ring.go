package rtt

// Ring arithmetic on wrapped offsets. One byte is always left unused so that
// wr == rd unambiguously means empty.

func ringUsed(size, wr, rd uint32) uint32 {
	if wr >= rd {
		return wr - rd
	}
	return size - rd + wr
}

func ringFree(size, wr, rd uint32) uint32 {
	return size - 1 - ringUsed(size, wr, rd)
}

// ringWrite copies src into buf starting at wr, wrapping once if needed, and
// returns the new write offset. The caller guarantees src fits.
func ringWrite(buf []byte, wr uint32, src []byte) uint32 {
	size := uint32(len(buf))
	n := uint32(len(src))
	first := size - wr
	if first > n {
		first = n
	}
	copy(buf[wr:wr+first], src[:first])
	if second := n - first; second > 0 {
		copy(buf[:second], src[first:])
	}
	wr += n
	if wr >= size {
		wr -= size
	}
	return wr
}

// ringRead copies up to len(dst) pending bytes out of buf starting at rd and
// returns the count and the new read offset.
func ringRead(buf []byte, wr, rd uint32, dst []byte) (int, uint32) {
	size := uint32(len(buf))
	n := ringUsed(size, wr, rd)
	if uint32(len(dst)) < n {
		n = uint32(len(dst))
	}
	if n == 0 {
		return 0, rd
	}
	first := size - rd
	if first > n {
		first = n
	}
	copy(dst[:first], buf[rd:rd+first])
	if second := n - first; second > 0 {
		copy(dst[first:n], buf[:second])
	}
	rd += n
	if rd >= size {
		rd -= size
	}
	return int(n), rd
}
