package io

// Record is a Channel that keeps everything sent to it, up to an
// optional Capacity of entries.
type Record struct {
	Capacity int

	Values  []byte
	Notices []string
}

var _ Channel = (*Record)(nil)

func (rc *Record) full() bool {
	return rc.Capacity > 0 && len(rc.Values)+len(rc.Notices) >= rc.Capacity
}

// Print records a value.
func (rc *Record) Print(value byte) (err error) {
	if rc.full() {
		err = ErrChannelFull
		return
	}

	rc.Values = append(rc.Values, value)
	return
}

// Notice records a message.
func (rc *Record) Notice(text string) (err error) {
	if rc.full() {
		err = ErrChannelFull
		return
	}

	rc.Notices = append(rc.Notices, text)
	return
}

// Rewind discards everything recorded.
func (rc *Record) Rewind() {
	rc.Values = nil
	rc.Notices = nil
}
