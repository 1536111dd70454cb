package backend

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode converts a raw row from the row store into a typed record and
// validates it, so that schema drift fails fast at the boundary instead of
// propagating untyped data inward.
func Decode[T any](raw json.RawMessage) (T, error) {
	var record T

	err := json.Unmarshal(raw, &record)
	if err != nil {
		return record, fmt.Errorf("failed to unmarshal row: %w", err)
	}

	err = validate.Struct(record)
	if err != nil {
		return record, fmt.Errorf("row failed schema validation: %w", err)
	}

	return record, nil
}

func DecodeAll[T any](rows []json.RawMessage) ([]T, error) {
	records := make([]T, 0, len(rows))

	for _, raw := range rows {
		record, err := Decode[T](raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
