package application

import "braindump/internal/domain"

// Re-export domain types for use by adapters
type (
	Idea       = domain.Idea
	Category   = domain.Category
	Filter     = domain.Filter
	StarredSet = domain.StarredSet
	Stats      = domain.Stats
)

const (
	CategoryIdea     = domain.CategoryIdea
	CategoryTodo     = domain.CategoryTodo
	CategoryInsight  = domain.CategoryInsight
	CategoryQuestion = domain.CategoryQuestion

	FilterAll     = domain.FilterAll
	FilterStarred = domain.FilterStarred
)
