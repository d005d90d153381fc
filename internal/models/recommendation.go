package models

// Recommendation is one row of a recommendation table.
type Recommendation struct {
	Rank     int     `json:"rank"`
	Index    int     `json:"index"`
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`
	Overview string  `json:"overview"`
	Score    float64 `json:"score"`
}

// RecommendationSet is the outcome of one query.
type RecommendationSet struct {
	Query        string           `json:"query"`
	MatchedTitle string           `json:"matched_title"`
	MatchedIndex int              `json:"matched_index"`
	Results      []Recommendation `json:"results"`
	Count        int              `json:"count"`
}

// NewRecommendation builds a table row for a movie.
func NewRecommendation(rank int, m Movie, score float64) Recommendation {
	return Recommendation{
		Rank:     rank,
		Index:    m.Index,
		Title:    m.Title,
		Genre:    m.Genres,
		Overview: m.OverviewText(),
		Score:    score,
	}
}

// TitleSuggestion is a fuzzy title match with its score.
type TitleSuggestion struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}
