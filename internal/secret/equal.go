package secret

// Equal reports whether a and b hold the same bytes, in time independent of
// where they first differ. The scan always covers the full length of the
// longer input and accumulates XOR differences; a length mismatch forces
// inequality but does not shorten the loop. Lengths themselves are not
// treated as secret.
func Equal(a, b []byte) bool {
	var diff byte
	if len(a) != len(b) {
		diff = 1
	}

	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		var x, y byte
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		diff |= x ^ y
	}

	return diff == 0
}
