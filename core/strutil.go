package core

// utoa converts an unsigned integer to a string without the fmt package
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

const hexDigits = "0123456789ABCDEF"

// hex32 formats n as 0x-prefixed uppercase hex with at least 3 digits,
// the width of a standard bus identifier.
func hex32(n uint32) string {
	var buf [10]byte
	pos := len(buf)
	for digits := 0; n > 0 || digits < 3; digits++ {
		pos--
		buf[pos] = hexDigits[n&0xF]
		n >>= 4
	}
	pos--
	buf[pos] = 'x'
	pos--
	buf[pos] = '0'
	return string(buf[pos:])
}
