package repository

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func toJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal -> %w", err)
	}
	return datatypes.JSON(b), nil
}

// fromJSON decodes a JSON column into out, leaving it untouched for NULL.
func fromJSON(data datatypes.JSON, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("json.Unmarshal -> %w", err)
	}
	return nil
}
