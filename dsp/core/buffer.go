package core

// Zero sets all values in buf to 0.
func Zero[S Sample](buf []S) {
	clear(buf)
}
