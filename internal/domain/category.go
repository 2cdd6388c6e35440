package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidFilter   = errors.New("invalid filter")
)

// Category tags an idea. The set of categories is closed.
type Category string

const (
	CategoryIdea     Category = "idea"
	CategoryTodo     Category = "todo"
	CategoryInsight  Category = "insight"
	CategoryQuestion Category = "question"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryIdea,
	CategoryTodo,
	CategoryInsight,
	CategoryQuestion,
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryIdea, CategoryTodo, CategoryInsight, CategoryQuestion:
		return true
	default:
		return false
	}
}

// Label returns the human-readable name of the category
func (c Category) Label() string {
	switch c {
	case CategoryIdea:
		return "Idea"
	case CategoryTodo:
		return "To-do"
	case CategoryInsight:
		return "Insight"
	case CategoryQuestion:
		return "Question"
	default:
		return "Unknown"
	}
}

// Next returns the category that follows c in Categories, wrapping around
func (c Category) Next() Category {
	for i, candidate := range Categories {
		if candidate == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return CategoryIdea
}

// ParseCategory converts user input into a Category.
// Empty input yields CategoryIdea.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryIdea, nil
	}
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q (expected idea, todo, insight or question)", ErrInvalidCategory, s)
	}
	return c, nil
}

// Filter selects which ideas are visible: all, starred, or a single category.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterStarred Filter = "starred"
)

// Filters lists every selector in the order the board cycles through them
var Filters = []Filter{
	FilterAll,
	FilterStarred,
	Filter(CategoryIdea),
	Filter(CategoryTodo),
	Filter(CategoryInsight),
	Filter(CategoryQuestion),
}

func (f Filter) String() string {
	return string(f)
}

// Category returns the category a category filter selects, if any
func (f Filter) Category() (Category, bool) {
	c := Category(f)
	return c, c.Valid()
}

// Next returns the selector that follows f in Filters, wrapping around
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// ParseFilter converts user input into a Filter. Empty input yields FilterAll.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return FilterAll, nil
	case string(FilterAll), string(FilterStarred):
		return Filter(s), nil
	}
	if Category(s).Valid() {
		return Filter(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected all, starred or a category)", ErrInvalidFilter, s)
}
