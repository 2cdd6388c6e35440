package domain

import "strings"

// Stats summarizes a whole room, regardless of the active filter
type Stats struct {
	Total     int `json:"total" yaml:"total" toml:"total"`
	Starred   int `json:"starred" yaml:"starred" toml:"starred"`
	Ideas     int `json:"ideas" yaml:"ideas" toml:"ideas"`
	Todos     int `json:"todos" yaml:"todos" toml:"todos"`
	Insights  int `json:"insights" yaml:"insights" toml:"insights"`
	Questions int `json:"questions" yaml:"questions" toml:"questions"`
}

// ForCategory returns the count for a single category
func (s Stats) ForCategory(c Category) int {
	switch c {
	case CategoryIdea:
		return s.Ideas
	case CategoryTodo:
		return s.Todos
	case CategoryInsight:
		return s.Insights
	case CategoryQuestion:
		return s.Questions
	default:
		return 0
	}
}

// ForFilter returns how many ideas a filter selects, ignoring search
func (s Stats) ForFilter(f Filter) int {
	switch f {
	case FilterAll:
		return s.Total
	case FilterStarred:
		return s.Starred
	}
	if c, ok := f.Category(); ok {
		return s.ForCategory(c)
	}
	return 0
}

// Query returns the ideas selected by filter and then narrowed by search.
// The result keeps the order of ideas and never aliases its backing array.
func Query(ideas []Idea, starred StarredSet, filter Filter, search string) []Idea {
	needle := strings.ToLower(strings.TrimSpace(search))
	category, byCategory := filter.Category()

	result := make([]Idea, 0, len(ideas))
	for _, idea := range ideas {
		switch {
		case filter == FilterStarred:
			if !starred.Has(idea.ID) {
				continue
			}
		case byCategory:
			if idea.Category != category {
				continue
			}
		case filter != FilterAll:
			// Unknown selectors match nothing
			continue
		}

		if needle != "" && !strings.Contains(strings.ToLower(idea.Text), needle) {
			continue
		}
		result = append(result, idea)
	}
	return result
}

// ComputeStats counts ideas over the unfiltered list
func ComputeStats(ideas []Idea, starred StarredSet) Stats {
	var s Stats
	s.Total = len(ideas)
	for _, idea := range ideas {
		if starred.Has(idea.ID) {
			s.Starred++
		}
		switch idea.Category {
		case CategoryIdea:
			s.Ideas++
		case CategoryTodo:
			s.Todos++
		case CategoryInsight:
			s.Insights++
		case CategoryQuestion:
			s.Questions++
		}
	}
	return s
}
