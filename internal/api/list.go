package api

import (
	"bytes"
	"encoding/json"
	"sort"

	"traveline/local-app/internal/model"
)

// listOf decodes either a bare JSON array or an object wrapping one, such
// as {"count": 2, "trips": [...]} or a paginated {"results": [...]}.
type listOf[T any] []T

func (l *listOf[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		raw := bytes.TrimSpace(obj[k])
		if len(raw) > 0 && raw[0] == '[' {
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				return err
			}
			*l = items
			return nil
		}
	}
	*l = nil
	return nil
}

type (
	tripList   = listOf[model.TravelPlan]
	userList   = listOf[model.AdminUser]
	recordList = listOf[model.Record]
)
