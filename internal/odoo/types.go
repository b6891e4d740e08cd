package odoo

import "encoding/json"

// String decodes ERP char fields, which come back as JSON false when
// the field is empty instead of null or "".
type String string

func (s *String) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if str, ok := v.(string); ok {
		*s = String(str)
	} else {
		*s = ""
	}
	return nil
}
