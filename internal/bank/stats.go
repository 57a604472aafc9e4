package bank

// Stats summarizes the filterable fields of a question pool.
type Stats struct {
	Total        int                `json:"total"`
	Topics       map[string]int     `json:"topics"`
	Difficulties map[Difficulty]int `json:"difficulties"`
	Types        map[Type]int       `json:"types"`
	Length       LengthStats        `json:"length"`
}

// LengthStats holds text-length aggregates over a pool.
type LengthStats struct {
	Min int     `json:"min"`
	Max int     `json:"max"`
	Avg float64 `json:"avg"`
}

// Statistics computes field counts and length aggregates for qs.
func Statistics(qs []Question) Stats {
	s := Stats{
		Total:        len(qs),
		Topics:       map[string]int{},
		Difficulties: map[Difficulty]int{},
		Types:        map[Type]int{},
	}
	total := 0
	for i, q := range qs {
		s.Topics[q.Topic]++
		s.Difficulties[q.Difficulty]++
		s.Types[q.Type]++

		n := len(q.Text)
		total += n
		if i == 0 || n < s.Length.Min {
			s.Length.Min = n
		}
		if n > s.Length.Max {
			s.Length.Max = n
		}
	}
	if len(qs) > 0 {
		s.Length.Avg = float64(total) / float64(len(qs))
	}
	return s
}

// Stats computes statistics over the bank's current pool.
func (b *Bank) Stats() Stats {
	return Statistics(b.Questions())
}
