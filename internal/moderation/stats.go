// Package moderation summarizes and enriches content reports for admins.
package moderation

import "github.com/anonto42/newsroom-social/backend/internal/models"

// Stats is the admin dashboard summary of all reports.
type Stats struct {
	Total         int            `json:"total"`
	Pending       int            `json:"pending"`
	Resolved      int            `json:"resolved"`
	ByContentType map[string]int `json:"byContentType"`
	ByCategory    map[string]int `json:"byCategory"`
}

// Summarize counts reports by status, content type and reason category.
func Summarize(reports []models.Report) Stats {
	s := Stats{
		ByContentType: map[string]int{
			models.ContentNews:          0,
			models.ContentSharedArticle: 0,
			models.ContentComment:       0,
		},
		ByCategory: map[string]int{
			CategoryOffensive: 0,
			CategoryFalseInfo: 0,
			CategorySpam:      0,
			CategoryCopyright: 0,
			CategoryOther:     0,
		},
	}
	for _, r := range reports {
		s.Total++
		if r.IsResolved {
			s.Resolved++
		} else {
			s.Pending++
		}
		s.ByContentType[r.ContentType]++
		s.ByCategory[Classify(r.Reason)]++
	}
	return s
}
