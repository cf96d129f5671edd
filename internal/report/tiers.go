package report

// readinessTiers maps score percentages to readiness buckets. Ordered by
// descending lower bound; each bound is inclusive, making [80, 100] the top
// tier. Thresholds are a single edit point.
var readinessTiers = []struct {
	Min  float64
	Name string
}{
	{80, "interview-ready"},
	{60, "almost-ready"},
	{40, "building-confidence"},
	{0, "needs-foundational-review"},
}

// ReadinessTier maps an overall percentage to its readiness bucket.
func ReadinessTier(percentage float64) string {
	for _, tier := range readinessTiers {
		if percentage >= tier.Min {
			return tier.Name
		}
	}
	return readinessTiers[len(readinessTiers)-1].Name
}
