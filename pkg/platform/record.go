package platform

// Record is the minimal record envelope the host hands to trigger handlers.
// The guard itself never inspects records; concrete handlers do.
type Record struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// chunkRecords splits records into sub-batches of at most limit records,
// preserving order. limit must be > 0.
func chunkRecords(records []Record, limit int) [][]Record {
	if len(records) == 0 {
		return nil
	}

	chunks := make([][]Record, 0, (len(records)+limit-1)/limit)
	for start := 0; start < len(records); start += limit {
		end := start + limit
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
