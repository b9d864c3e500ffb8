package domain

// TimePoint summarises one bucket of a view for timeline navigation
type TimePoint struct {
	Key    BucketKey
	Label  string
	Count  int
	Anchor string
}

// Timeline lists the buckets of v in view order with their sizes
func Timeline(v *ViewIndex) []TimePoint {
	if v == nil {
		return nil
	}
	points := make([]TimePoint, 0, len(v.Buckets))
	for _, b := range v.Buckets {
		p := TimePoint{
			Key:   b.Key,
			Label: b.Key.Label(),
			Count: len(b.Identities),
		}
		if len(b.Identities) > 0 {
			p.Anchor = b.Identities[0]
		}
		points = append(points, p)
	}
	return points
}
