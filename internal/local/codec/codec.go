// Package codec holds the pure mapping functions between storage
// representations and domain values: delimited-string encodings of id
// lists, epoch-millisecond timestamps and listing status tags. Every value
// crossing the local store boundary goes through here, so each function
// must round-trip exactly.
package codec

import (
	"strings"
	"time"
)

// listSep delimits list-valued attributes in a single TEXT column.
// Identifiers are UUIDs and media refs are storage paths; neither may
// contain a comma.
const listSep = ","

// JoinList encodes an ordered string list as a single delimited value.
// An empty list encodes to the empty string.
func JoinList(items []string) string {
	return strings.Join(items, listSep)
}

// SplitList decodes a delimited value back into a list. The empty string
// decodes to a nil list, not a one-element list of "".
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}

// EncodeTime encodes a timestamp as epoch milliseconds UTC. The zero time
// encodes to 0 so "unset" survives the round trip.
func EncodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// DecodeTime is the inverse of EncodeTime.
func DecodeTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
