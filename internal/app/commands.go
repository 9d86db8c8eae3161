package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/unistay/unistay/internal/models"
)

var errUsage = errors.New("usage: unistay <sync|profile|listings|reviews|bookmark|block|vote|logout> [args]")

// Run dispatches one subcommand. Output goes to stdout; errors are
// returned to main for exit-code handling.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "sync":
		return a.runSync(ctx)
	case "profile":
		return a.runProfile(ctx, args[1:])
	case "listings":
		return a.runListings(ctx, args[1:])
	case "reviews":
		return a.runReviews(ctx, args[1:])
	case "bookmark":
		return a.runBookmark(ctx, args[1:])
	case "block":
		return a.runBlock(ctx, args[1:])
	case "vote":
		return a.runVote(ctx, args[1:])
	case "logout":
		return a.Profiles.Logout(ctx)
	case "help":
		fmt.Println(errUsage.Error())
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func (a *App) runSync(ctx context.Context) error {
	if err := a.Listings.Sync(ctx); err != nil {
		return err
	}
	if err := a.Reviews.Sync(ctx); err != nil {
		return err
	}
	lt, err := a.Listings.LastSync(ctx)
	if err != nil {
		return err
	}
	rt, err := a.Reviews.LastSync(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("synced: listings %s, reviews %s\n", lt.Format("15:04:05"), rt.Format("15:04:05"))
	return nil
}

func (a *App) runProfile(ctx context.Context, args []string) error {
	id, err := a.targetUser(ctx, args)
	if err != nil {
		return err
	}
	p, err := a.Profiles.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", p.Name, p.ID)
	if p.University != "" {
		fmt.Printf("  university: %s\n", p.University)
	}
	if p.Residency != "" {
		fmt.Printf("  residency:  %s\n", p.Residency)
	}
	if len(p.BookmarkedListingIDs) > 0 {
		fmt.Printf("  bookmarks:  %d\n", len(p.BookmarkedListingIDs))
	}
	if len(p.BlockedUserIDs) > 0 {
		fmt.Printf("  blocked:    %d\n", len(p.BlockedUserIDs))
	}
	return nil
}

func (a *App) runListings(ctx context.Context, args []string) error {
	var (
		ls  []models.Listing
		err error
	)
	if len(args) > 0 {
		ls, err = a.Listings.ByOwner(ctx, args[0])
	} else {
		ls, err = a.Listings.All(ctx)
	}
	if err != nil {
		return err
	}
	for _, l := range ls {
		fmt.Printf("%s  %-30s  %.0f/mo  %s\n", l.ID, l.Title, l.Rate, l.Status)
	}
	return nil
}

func (a *App) runReviews(ctx context.Context, args []string) error {
	var (
		rvs []models.Review
		err error
	)
	if len(args) > 0 {
		rvs, err = a.Reviews.ByOwner(ctx, args[0])
	} else {
		rvs, err = a.Reviews.All(ctx)
	}
	if err != nil {
		return err
	}
	for _, rv := range rvs {
		author := rv.OwnerID
		if rv.Anonymous {
			author = "anonymous"
		}
		fmt.Printf("%s  %-20s  %.1f  by %s (score %+d)\n", rv.ID, rv.Residency, rv.Grade, author, rv.Score())
	}
	return nil
}

func (a *App) runBookmark(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: unistay bookmark <add|remove> <listing-id>")
	}
	owner, err := a.targetUser(ctx, nil)
	if err != nil {
		return err
	}
	switch args[0] {
	case "add":
		return a.Profiles.AddBookmark(ctx, owner, args[1])
	case "remove":
		return a.Profiles.RemoveBookmark(ctx, owner, args[1])
	default:
		return fmt.Errorf("usage: unistay bookmark <add|remove> <listing-id>")
	}
}

func (a *App) runBlock(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: unistay block <add|remove> <user-id>")
	}
	owner, err := a.targetUser(ctx, nil)
	if err != nil {
		return err
	}
	switch args[0] {
	case "add":
		return a.Profiles.AddBlockedUser(ctx, owner, args[1])
	case "remove":
		return a.Profiles.RemoveBlockedUser(ctx, owner, args[1])
	default:
		return fmt.Errorf("usage: unistay block <add|remove> <user-id>")
	}
}

func (a *App) runVote(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: unistay vote <review-id> <up|down|clear>")
	}
	voter, err := a.targetUser(ctx, nil)
	if err != nil {
		return err
	}
	switch args[1] {
	case "up":
		return a.Reviews.Vote(ctx, args[0], voter, true)
	case "down":
		return a.Reviews.Vote(ctx, args[0], voter, false)
	case "clear":
		return a.Reviews.ClearVote(ctx, args[0], voter)
	default:
		return fmt.Errorf("usage: unistay vote <review-id> <up|down|clear>")
	}
}

// targetUser resolves the acting user: an explicit id argument wins,
// otherwise the session identity is used.
func (a *App) targetUser(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	id, ok := a.id.CurrentUserID(ctx)
	if !ok {
		return "", errors.New("not signed in")
	}
	return id, nil
}
