package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_VoteSetsStayDisjoint(t *testing.T) {
	r := &Review{ID: "r1"}

	assert.True(t, r.Upvote("u1"))
	assert.Equal(t, []string{"u1"}, r.Upvoters)
	assert.Empty(t, r.Downvoters)

	// switching sides moves the id, never duplicates it
	assert.True(t, r.Downvote("u1"))
	assert.Empty(t, r.Upvoters)
	assert.Equal(t, []string{"u1"}, r.Downvoters)

	// repeat vote is a no-op
	assert.False(t, r.Downvote("u1"))
	assert.Equal(t, []string{"u1"}, r.Downvoters)

	assert.True(t, r.Upvote("u2"))
	assert.Equal(t, 0, r.Score())

	assert.True(t, r.ClearVote("u1"))
	assert.False(t, r.ClearVote("u1"))
	assert.Equal(t, []string{"u2"}, r.Upvoters)
	assert.Empty(t, r.Downvoters)
}

func TestReview_Validate(t *testing.T) {
	tests := []struct {
		name    string
		grade   float64
		wantErr bool
	}{
		{name: "min", grade: GradeMin},
		{name: "max", grade: GradeMax},
		{name: "middle", grade: 3.5},
		{name: "below", grade: 0, wantErr: true},
		{name: "above", grade: 5.5, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := (&Review{Grade: tc.grade}).Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseListingStatus(t *testing.T) {
	assert.Equal(t, Posted(), ParseListingStatus("posted"))
	assert.Equal(t, Reserved(), ParseListingStatus("reserved"))
	assert.Equal(t, Withdrawn(), ParseListingStatus("withdrawn"))

	got := ParseListingStatus("archived")
	require.Equal(t, StatusUnknown, got.Kind)
	assert.Equal(t, "archived", got.Raw)
	// unknown values round-trip unchanged instead of collapsing to a default
	assert.Equal(t, "archived", got.String())
	assert.Equal(t, "posted", Posted().String())
}

func TestProfile_RelationshipLists(t *testing.T) {
	p := &Profile{ID: "u1", BlockedNames: map[string]string{}}

	assert.True(t, p.AddBookmark("l1"))
	assert.False(t, p.AddBookmark("l1"))
	assert.Equal(t, []string{"l1"}, p.BookmarkedListingIDs)
	assert.True(t, p.RemoveBookmark("l1"))
	assert.False(t, p.RemoveBookmark("l1"))

	assert.True(t, p.BlockUser("u2"))
	assert.False(t, p.BlockUser("u2"))
	p.BlockedNames["u2"] = "Sam"
	assert.True(t, p.UnblockUser("u2"))
	assert.Empty(t, p.BlockedUserIDs)
	assert.NotContains(t, p.BlockedNames, "u2")
}

func TestProfile_CloneIsDeep(t *testing.T) {
	p := &Profile{
		ID:                   "u1",
		PreferredTags:        []string{"quiet"},
		BookmarkedListingIDs: []string{"l1"},
		BlockedUserIDs:       []string{"u2"},
		BlockedNames:         map[string]string{"u2": "Sam"},
	}
	cp := p.Clone()
	cp.PreferredTags[0] = "loud"
	cp.BookmarkedListingIDs[0] = "l9"
	cp.BlockedNames["u2"] = "Pat"

	assert.Equal(t, "quiet", p.PreferredTags[0])
	assert.Equal(t, "l1", p.BookmarkedListingIDs[0])
	assert.Equal(t, "Sam", p.BlockedNames["u2"])
}

func TestParseDarkMode(t *testing.T) {
	assert.Equal(t, DarkModeOn, ParseDarkMode("on"))
	assert.Equal(t, DarkModeOff, ParseDarkMode("off"))
	assert.Equal(t, DarkModeSystem, ParseDarkMode("system"))
	assert.Equal(t, DarkModeSystem, ParseDarkMode(""))
	assert.Equal(t, DarkModeSystem, ParseDarkMode("whatever"))
}
