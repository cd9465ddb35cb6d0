package services

// Source says where in the app a completion came from.
type Source string

const (
	SourceToday   Source = "today"
	SourceCatalog Source = "catalog"
)

func (s Source) Valid() bool {
	return s == SourceToday || s == SourceCatalog
}

const (
	PointsRecommended = 20
	PointsToday       = 10
	PointsCatalog     = 5
)

// PointsFor is the scoring rule. Recommended wins over the source tag.
func PointsFor(recommended bool, source Source) int {
	switch {
	case recommended:
		return PointsRecommended
	case source == SourceCatalog:
		return PointsCatalog
	default:
		return PointsToday
	}
}
