package models

import (
	"fmt"
	"time"
)

// Grade bounds for a review, inclusive.
const (
	GradeMin = 0.5
	GradeMax = 5.0
)

// Review is a residency review. Like listings, reviews are authoritative
// on the remote side and cached via full-snapshot sync.
//
// Invariant: a user id never appears in both Upvoters and Downvoters.
// The vote methods maintain this; storage does not enforce it.
type Review struct {
	ID      string
	OwnerID string

	CreatedAt time.Time

	// Residency is the reviewed student residence.
	Residency string
	// Grade is the numeric rating, within [GradeMin, GradeMax].
	Grade float64
	Body  string

	MediaRefs []string

	Upvoters   []string
	Downvoters []string

	Anonymous bool
}

// Validate checks the grade bound.
func (r *Review) Validate() error {
	if r.Grade < GradeMin || r.Grade > GradeMax {
		return fmt.Errorf("grade %v out of range [%v, %v]", r.Grade, GradeMin, GradeMax)
	}
	return nil
}

// Upvote records an upvote by userID, removing any standing downvote.
// Reports whether the vote sets changed.
func (r *Review) Upvote(userID string) bool {
	var changed bool
	r.Downvoters, changed = removeID(r.Downvoters, userID)
	if !containsID(r.Upvoters, userID) {
		r.Upvoters = append(r.Upvoters, userID)
		changed = true
	}
	return changed
}

// Downvote records a downvote by userID, removing any standing upvote.
// Reports whether the vote sets changed.
func (r *Review) Downvote(userID string) bool {
	var changed bool
	r.Upvoters, changed = removeID(r.Upvoters, userID)
	if !containsID(r.Downvoters, userID) {
		r.Downvoters = append(r.Downvoters, userID)
		changed = true
	}
	return changed
}

// ClearVote removes userID from both vote sets.
func (r *Review) ClearVote(userID string) bool {
	up, upChanged := removeID(r.Upvoters, userID)
	down, downChanged := removeID(r.Downvoters, userID)
	r.Upvoters, r.Downvoters = up, down
	return upChanged || downChanged
}

// Score is upvotes minus downvotes.
func (r *Review) Score() int {
	return len(r.Upvoters) - len(r.Downvoters)
}
