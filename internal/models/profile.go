// Package models defines the domain records cached by the local store and
// synchronized with the remote store: the current user's Profile, rental
// Listings and residency Reviews.
package models

// DarkMode is the three-state appearance preference. The zero value is
// DarkModeSystem (follow the platform setting).
type DarkMode string

const (
	DarkModeSystem DarkMode = "system"
	DarkModeOn     DarkMode = "on"
	DarkModeOff    DarkMode = "off"
)

// ParseDarkMode maps a stored value to a DarkMode, defaulting to
// DarkModeSystem for empty or unrecognized input.
func ParseDarkMode(s string) DarkMode {
	switch DarkMode(s) {
	case DarkModeOn:
		return DarkModeOn
	case DarkModeOff:
		return DarkModeOff
	default:
		return DarkModeSystem
	}
}

// Profile is the identity-keyed record for a marketplace user. The local
// store holds at most one Profile row at any time: the currently
// authenticated user. BlockedNames is local-only and never pushed remotely.
type Profile struct {
	// ID is the owner identifier and primary key.
	ID string

	// Personal info.
	Name       string
	Contact    string
	University string
	HomeTown   string
	Residency  string
	PictureRef string

	// Numeric preference bounds. Zero means unset.
	PriceMin int64
	PriceMax int64
	SizeMin  float64
	SizeMax  float64

	// PreferredTags is the set of categorical housing tags the user
	// filters by.
	PreferredTags []string

	// Relationship lists.
	BookmarkedListingIDs []string
	BlockedUserIDs       []string

	// BlockedNames caches display names for blocked users so the block
	// list renders offline. Local-only.
	BlockedNames map[string]string

	DarkMode DarkMode
}

// Clone returns a deep copy so coordinator edits never alias a caller's
// slices or the blocked-name map.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.PreferredTags = append([]string(nil), p.PreferredTags...)
	cp.BookmarkedListingIDs = append([]string(nil), p.BookmarkedListingIDs...)
	cp.BlockedUserIDs = append([]string(nil), p.BlockedUserIDs...)
	if p.BlockedNames != nil {
		cp.BlockedNames = make(map[string]string, len(p.BlockedNames))
		for k, v := range p.BlockedNames {
			cp.BlockedNames[k] = v
		}
	}
	return &cp
}

// AddBookmark adds id to the bookmark list if absent. Reports whether the
// list changed.
func (p *Profile) AddBookmark(id string) bool {
	if containsID(p.BookmarkedListingIDs, id) {
		return false
	}
	p.BookmarkedListingIDs = append(p.BookmarkedListingIDs, id)
	return true
}

// RemoveBookmark removes id from the bookmark list. Reports whether the
// list changed.
func (p *Profile) RemoveBookmark(id string) bool {
	next, changed := removeID(p.BookmarkedListingIDs, id)
	p.BookmarkedListingIDs = next
	return changed
}

// BlockUser adds id to the blocked set if absent. Reports whether the set
// changed.
func (p *Profile) BlockUser(id string) bool {
	if containsID(p.BlockedUserIDs, id) {
		return false
	}
	p.BlockedUserIDs = append(p.BlockedUserIDs, id)
	return true
}

// UnblockUser removes id from the blocked set and drops any cached display
// name. Reports whether the set changed.
func (p *Profile) UnblockUser(id string) bool {
	next, changed := removeID(p.BlockedUserIDs, id)
	p.BlockedUserIDs = next
	delete(p.BlockedNames, id)
	return changed
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
