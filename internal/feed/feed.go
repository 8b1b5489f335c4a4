// Package feed composes a viewer's shared-article feed from fresh store reads.
package feed

import (
	"sort"
	"strings"

	"github.com/anonto42/newsroom-social/backend/internal/models"
)

// PageSize is the number of articles per feed page.
const PageSize = 20

// Sort keys accepted by Compose.
const (
	SortNewest        = "newest"
	SortOldest        = "oldest"
	SortMostLiked     = "most_liked"
	SortMostCommented = "most_commented"
)

// Options narrows and orders a feed.
type Options struct {
	FollowingOnly bool
	Sort          string
	Page          int
}

// Page is one page of a composed feed.
type Page struct {
	Articles   []models.SharedArticle `json:"articles"`
	Count      int                    `json:"count"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"totalPages"`
	HasNext    bool                   `json:"hasNext"`
}

// ParseSort maps a query value onto a sort key, defaulting to newest.
func ParseSort(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SortOldest:
		return SortOldest
	case SortMostLiked:
		return SortMostLiked
	case SortMostCommented:
		return SortMostCommented
	default:
		return SortNewest
	}
}

// Compose drops articles owned by blocked users, optionally keeps only
// articles owned by users in following, sorts and paginates.
func Compose(viewerID uint, articles []models.SharedArticle, blocked, following map[uint]struct{}, opts Options) Page {
	visible := make([]models.SharedArticle, 0, len(articles))
	for _, a := range articles {
		if _, ok := blocked[a.UserID]; ok {
			continue
		}
		if opts.FollowingOnly {
			if _, ok := following[a.UserID]; !ok {
				continue
			}
		}
		visible = append(visible, a)
	}

	sort.SliceStable(visible, less(visible, ParseSort(opts.Sort)))

	page := opts.Page
	if page < 1 {
		page = 1
	}
	total := len(visible)
	totalPages := (total + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return Page{
		Articles:   visible[start:end],
		Count:      end - start,
		Page:       page,
		TotalPages: totalPages,
		HasNext:    end < total,
	}
}

func less(a []models.SharedArticle, key string) func(i, j int) bool {
	newer := func(i, j int) bool {
		if !a[i].CreatedAt.Equal(a[j].CreatedAt) {
			return a[i].CreatedAt.After(a[j].CreatedAt)
		}
		return a[i].ID > a[j].ID
	}

	switch key {
	case SortOldest:
		return func(i, j int) bool {
			if !a[i].CreatedAt.Equal(a[j].CreatedAt) {
				return a[i].CreatedAt.Before(a[j].CreatedAt)
			}
			return a[i].ID < a[j].ID
		}
	case SortMostLiked:
		return func(i, j int) bool {
			if a[i].LikeCount != a[j].LikeCount {
				return a[i].LikeCount > a[j].LikeCount
			}
			return newer(i, j)
		}
	case SortMostCommented:
		return func(i, j int) bool {
			if a[i].CommentCount != a[j].CommentCount {
				return a[i].CommentCount > a[j].CommentCount
			}
			return newer(i, j)
		}
	default:
		return newer
	}
}

// IDSet builds a lookup set.
func IDSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
