package transcript

// LastN returns the last n records, or all of them when there are fewer.
func LastN(recs []Record, n int) []Record {
	if n <= 0 {
		return []Record{}
	}
	if n >= len(recs) {
		return recs
	}
	return recs[len(recs)-n:]
}
