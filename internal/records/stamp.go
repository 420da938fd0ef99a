package records

import (
	"fmt"
	"time"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// StampWords is the size of a Stamp.
const StampWords = 3

// mesaEpochOffset is the number of seconds between 1901-01-01 and the
// Unix epoch.
const mesaEpochOffset = 2177452800

// Stamp identifies a version of a file: the network and host that
// produced it and when.
type Stamp struct {
	Net  uint8
	Host uint8
	Time uint32
}

// DecodeStamp reads a Stamp.
func DecodeStamp(b *word.Buffer) (Stamp, error) {
	w, err := b.Get16()
	if err != nil {
		return Stamp{}, err
	}
	t, err := b.Get32()
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{Net: uint8(w >> 8), Host: uint8(w), Time: t}, nil
}

// IsNull reports whether the stamp carries no time.
func (s Stamp) IsNull() bool { return s == Stamp{} }

// GoTime converts the stamp time to UTC.
func (s Stamp) GoTime() time.Time {
	return time.Unix(int64(s.Time)-mesaEpochOffset, 0).UTC()
}

// String formats the stamp as net#host#time.
func (s Stamp) String() string {
	if s.Time == 0 {
		return fmt.Sprintf("%d#%d#0", s.Net, s.Host)
	}
	return fmt.Sprintf("%d#%d#%s", s.Net, s.Host, s.GoTime().Format("2-Jan-06 15:04:05"))
}
