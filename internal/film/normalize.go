package film

import "strings"

const (
	// MaxGenres caps how many genres survive normalization.
	MaxGenres = 5

	// DefaultReview stands in for a missing summary.
	DefaultReview = "No review available"
)

// Normalize maps a raw payload onto a ViewModel. It is pure and total: any
// combination of missing fields yields a usable value.
func Normalize(p Payload) ViewModel {
	var details RawMovieDetails
	if p.MovieDetails != nil {
		details = *p.MovieDetails
	}

	review := DefaultReview
	if p.Summary != "" {
		review = p.Summary.String()
	}

	aspects := make([]Aspect, len(p.Aspects))
	copy(aspects, p.Aspects)

	return ViewModel{
		Name:            details.MovieName.String(),
		Director:        details.Director.String(),
		Year:            details.Year.String(),
		Genres:          ParseGenres(details.Genres.String()),
		BackgroundImage: details.BackdropImageURL.String(),
		Synopsis:        details.Synopsis.String(),
		Review:          review,
		Aspects:         aspects,
	}
}

// ParseGenres splits a comma-joined genre list, trims each entry, drops
// blanks and keeps at most MaxGenres entries in their original order.
func ParseGenres(raw string) []string {
	genres := make([]string, 0, MaxGenres)
	if raw == "" {
		return genres
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		genres = append(genres, part)
		if len(genres) == MaxGenres {
			break
		}
	}
	return genres
}
