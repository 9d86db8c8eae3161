package remote

import (
	"fmt"
	"time"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/models"
)

// Wire documents. Decoding is strict: a document that unmarshals but fails
// validation surfaces common.ErrCorruptRemoteData instead of silently
// dropping fields, so data problems are never masked as cache misses.

type profileDoc struct {
	ID         string   `bson:"_id"`
	Name       string   `bson:"name"`
	Contact    string   `bson:"contact,omitempty"`
	University string   `bson:"university,omitempty"`
	HomeTown   string   `bson:"home_town,omitempty"`
	Residency  string   `bson:"residency,omitempty"`
	PictureRef string   `bson:"picture_ref,omitempty"`
	PriceMin   int64    `bson:"price_min,omitempty"`
	PriceMax   int64    `bson:"price_max,omitempty"`
	SizeMin    float64  `bson:"size_min,omitempty"`
	SizeMax    float64  `bson:"size_max,omitempty"`
	Tags       []string `bson:"tags,omitempty"`
	Bookmarks  []string `bson:"bookmarked_listing_ids,omitempty"`
	Blocked    []string `bson:"blocked_user_ids,omitempty"`
	DarkMode   string   `bson:"dark_mode,omitempty"`
}

func profileToDoc(p *models.Profile) profileDoc {
	// BlockedNames is a local-only cache and never leaves the device.
	return profileDoc{
		ID:         p.ID,
		Name:       p.Name,
		Contact:    p.Contact,
		University: p.University,
		HomeTown:   p.HomeTown,
		Residency:  p.Residency,
		PictureRef: p.PictureRef,
		PriceMin:   p.PriceMin,
		PriceMax:   p.PriceMax,
		SizeMin:    p.SizeMin,
		SizeMax:    p.SizeMax,
		Tags:       p.PreferredTags,
		Bookmarks:  p.BookmarkedListingIDs,
		Blocked:    p.BlockedUserIDs,
		DarkMode:   string(p.DarkMode),
	}
}

func (d profileDoc) toModel() (*models.Profile, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("%w: profile document without id", common.ErrCorruptRemoteData)
	}
	return &models.Profile{
		ID:                   d.ID,
		Name:                 d.Name,
		Contact:              d.Contact,
		University:           d.University,
		HomeTown:             d.HomeTown,
		Residency:            d.Residency,
		PictureRef:           d.PictureRef,
		PriceMin:             d.PriceMin,
		PriceMax:             d.PriceMax,
		SizeMin:              d.SizeMin,
		SizeMax:              d.SizeMax,
		PreferredTags:        d.Tags,
		BookmarkedListingIDs: d.Bookmarks,
		BlockedUserIDs:       d.Blocked,
		DarkMode:             models.ParseDarkMode(d.DarkMode),
	}, nil
}

type listingDoc struct {
	ID            string    `bson:"_id"`
	OwnerID       string    `bson:"owner_id"`
	CreatedAt     time.Time `bson:"created_at,omitempty"`
	Title         string    `bson:"title,omitempty"`
	Address       string    `bson:"address,omitempty"`
	Description   string    `bson:"description,omitempty"`
	Rate          float64   `bson:"rate,omitempty"`
	Area          float64   `bson:"area,omitempty"`
	AvailableFrom time.Time `bson:"available_from,omitempty"`
	MediaRefs     []string  `bson:"media_refs,omitempty"`
	Status        string    `bson:"status,omitempty"`
	Lat           float64   `bson:"lat,omitempty"`
	Lng           float64   `bson:"lng,omitempty"`
}

func listingToDoc(l *models.Listing) listingDoc {
	return listingDoc{
		ID:            l.ID,
		OwnerID:       l.OwnerID,
		CreatedAt:     l.CreatedAt,
		Title:         l.Title,
		Address:       l.Address,
		Description:   l.Description,
		Rate:          l.Rate,
		Area:          l.Area,
		AvailableFrom: l.AvailableFrom,
		MediaRefs:     l.MediaRefs,
		Status:        l.Status.String(),
		Lat:           l.Location.Lat,
		Lng:           l.Location.Lng,
	}
}

func (d listingDoc) toModel() (*models.Listing, error) {
	if d.ID == "" || d.OwnerID == "" {
		return nil, fmt.Errorf("%w: listing document missing id or owner", common.ErrCorruptRemoteData)
	}
	return &models.Listing{
		ID:            d.ID,
		OwnerID:       d.OwnerID,
		CreatedAt:     normalizeTime(d.CreatedAt),
		Title:         d.Title,
		Address:       d.Address,
		Description:   d.Description,
		Rate:          d.Rate,
		Area:          d.Area,
		AvailableFrom: normalizeTime(d.AvailableFrom),
		MediaRefs:     d.MediaRefs,
		Status:        models.ParseListingStatus(d.Status),
		Location:      models.GeoPoint{Lat: d.Lat, Lng: d.Lng},
	}, nil
}

type reviewDoc struct {
	ID         string    `bson:"_id"`
	OwnerID    string    `bson:"owner_id"`
	CreatedAt  time.Time `bson:"created_at,omitempty"`
	Residency  string    `bson:"residency,omitempty"`
	Grade      float64   `bson:"grade,omitempty"`
	Body       string    `bson:"body,omitempty"`
	MediaRefs  []string  `bson:"media_refs,omitempty"`
	Upvoters   []string  `bson:"upvoter_ids,omitempty"`
	Downvoters []string  `bson:"downvoter_ids,omitempty"`
	Anonymous  bool      `bson:"anonymous,omitempty"`
}

func reviewToDoc(rv *models.Review) reviewDoc {
	return reviewDoc{
		ID:         rv.ID,
		OwnerID:    rv.OwnerID,
		CreatedAt:  rv.CreatedAt,
		Residency:  rv.Residency,
		Grade:      rv.Grade,
		Body:       rv.Body,
		MediaRefs:  rv.MediaRefs,
		Upvoters:   rv.Upvoters,
		Downvoters: rv.Downvoters,
		Anonymous:  rv.Anonymous,
	}
}

func (d reviewDoc) toModel() (*models.Review, error) {
	if d.ID == "" || d.OwnerID == "" {
		return nil, fmt.Errorf("%w: review document missing id or owner", common.ErrCorruptRemoteData)
	}
	return &models.Review{
		ID:         d.ID,
		OwnerID:    d.OwnerID,
		CreatedAt:  normalizeTime(d.CreatedAt),
		Residency:  d.Residency,
		Grade:      d.Grade,
		Body:       d.Body,
		MediaRefs:  d.MediaRefs,
		Upvoters:   d.Upvoters,
		Downvoters: d.Downvoters,
		Anonymous:  d.Anonymous,
	}, nil
}

// normalizeTime maps BSON's zero datetime back to Go's zero time and pins
// the location to UTC so values compare equal after a round trip.
func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}
