package archivefs

import "io"

// Reader is the minimal read-only file abstraction this package exposes to
// callers that want to stream an entry's content without pulling in a
// random-access I/O dependency (that remains the driver's concern; see
// spec's Non-goals).
type Reader interface {
	Read(p []byte) (int, error)
}

// ReadFully reads from r into buf until buf is full, r returns io.EOF, or a
// read returns zero bytes with a nil error (which would otherwise loop
// forever). It returns the number of bytes read and, unlike io.ReadFull,
// does not treat a short read terminated by io.EOF as an error -- callers
// that need "exactly len(buf) bytes or fail" should compare the returned
// count against len(buf) themselves.
func ReadFully(r Reader, buf []byte) (int, error) {
	var total int
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, io.ErrNoProgress
		}
	}
	return total, nil
}
