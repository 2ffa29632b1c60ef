package convert

import "github.com/takumiyoshikawa/dscgen/internal/mof"

// Value maps a MOF value to its JSON/YAML form. Kinds without a document
// equivalent, such as instance references, become their MOF text.
func Value(v mof.Value) any {
	switch val := v.(type) {
	case mof.String:
		return string(val)
	case mof.EnumName:
		return string(val)
	case mof.Integer:
		return int64(val)
	case mof.Boolean:
		return bool(val)
	case mof.Real:
		return float64(val)
	case mof.Null:
		return nil
	case mof.List:
		// Null elements are omitted like null properties.
		items := make([]any, 0, len(val))
		for _, item := range val {
			if _, isNull := item.(mof.Null); isNull {
				continue
			}
			items = append(items, Value(item))
		}
		return items
	default:
		return mof.Text(v)
	}
}
