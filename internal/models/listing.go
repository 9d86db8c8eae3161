package models

import "time"

// StatusKind enumerates the listing lifecycle states. StatusUnknown is the
// explicit variant for wire values the decoder does not recognize, so
// callers can tell "really posted" apart from "could not decode".
type StatusKind int

const (
	StatusPosted StatusKind = iota
	StatusReserved
	StatusWithdrawn
	StatusUnknown
)

const (
	statusPostedWire    = "posted"
	statusReservedWire  = "reserved"
	statusWithdrawnWire = "withdrawn"
)

// ListingStatus is the decoded lifecycle state of a listing. When Kind is
// StatusUnknown, Raw preserves the original wire value and is written back
// unchanged on encode.
type ListingStatus struct {
	Kind StatusKind
	Raw  string
}

func Posted() ListingStatus    { return ListingStatus{Kind: StatusPosted} }
func Reserved() ListingStatus  { return ListingStatus{Kind: StatusReserved} }
func Withdrawn() ListingStatus { return ListingStatus{Kind: StatusWithdrawn} }

// ParseListingStatus decodes a wire/storage status value. Unrecognized
// values map to StatusUnknown with the raw value preserved.
func ParseListingStatus(s string) ListingStatus {
	switch s {
	case statusPostedWire:
		return ListingStatus{Kind: StatusPosted}
	case statusReservedWire:
		return ListingStatus{Kind: StatusReserved}
	case statusWithdrawnWire:
		return ListingStatus{Kind: StatusWithdrawn}
	default:
		return ListingStatus{Kind: StatusUnknown, Raw: s}
	}
}

// String returns the wire representation. Unknown statuses round-trip their
// raw value.
func (s ListingStatus) String() string {
	switch s.Kind {
	case StatusPosted:
		return statusPostedWire
	case StatusReserved:
		return statusReservedWire
	case StatusWithdrawn:
		return statusWithdrawnWire
	default:
		return s.Raw
	}
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Listing is a rental listing. Listings are created remotely by a host
// user and cached locally via full-snapshot sync; the remote store is
// authoritative.
type Listing struct {
	// ID is the globally unique listing identifier.
	ID      string
	OwnerID string

	CreatedAt time.Time

	Title       string
	Address     string
	Description string

	// Rate is the monthly rate in the marketplace currency.
	Rate float64
	// Area is the room area in square meters.
	Area float64

	AvailableFrom time.Time

	// MediaRefs is the ordered list of photo references.
	MediaRefs []string

	Status   ListingStatus
	Location GeoPoint
}
