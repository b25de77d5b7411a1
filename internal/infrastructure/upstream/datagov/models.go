package datagov

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mandi-service/internal/domain/entities"
)

// pageResponse is the subset of the resource payload the fetcher reads.
// Other fields (total, count, field metadata) are ignored.
type pageResponse struct {
	Records []entities.PriceRecord `json:"records"`
}

// decodePage parses one page body. A body without "records" is an empty page.
func decodePage(body []byte) ([]entities.PriceRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	// keep numbers as sent so records pass through untouched
	dec.UseNumber()

	var page pageResponse
	if err := dec.Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPage, err)
	}

	if page.Records == nil {
		return []entities.PriceRecord{}, nil
	}
	return page.Records, nil
}
