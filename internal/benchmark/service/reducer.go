package service

import "benchmark-service/internal/benchmark/model"

// Reduce picks the most demanding requirement by combined cpu+gpu score and
// returns it unchanged; fields are never mixed between requirements. The first
// requirement wins on equal demand.
//
// An empty pool is a normal outcome: the zero Requirement is returned with ok=false.
func Reduce(reqs []model.Requirement) (model.Requirement, bool) {
	if len(reqs) == 0 {
		return model.Requirement{}, false
	}
	best := 0
	bestDemand := reqs[0].Demand()
	for i := 1; i < len(reqs); i++ {
		if d := reqs[i].Demand(); d > bestDemand {
			best, bestDemand = i, d
		}
	}
	return reqs[best], true
}

// ReduceAggregate builds a recommendation from a pool: the heaviest minimum
// requirement and the heaviest recommended requirement, each chosen only among
// pool members of that type. A side with no members stays zero-valued.
func ReduceAggregate(pool []model.Requirement) model.Aggregate {
	var mins, recs []model.Requirement
	for _, r := range pool {
		switch r.Type {
		case model.Minimum:
			mins = append(mins, r)
		case model.Recommended:
			recs = append(recs, r)
		}
	}
	agg := model.Aggregate{Source: pool}
	agg.Min, _ = Reduce(mins)
	agg.Recommended, _ = Reduce(recs)
	return agg
}
