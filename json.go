/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MarshalJSON returns the dictionary as an ordered JSON object.
//
// Primitive values are exported as their textual form, nested dictionaries as nested objects.
// Pattern keywords keep their quotes, "$name;" entries are exported as "$name": null
// and directives as "#name": "args". When a keyword occurs more than once, the last value is exported
// at the position of the first occurrence.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return d.exportMap().MarshalJSON()
}

// MarshalYAML returns the same ordered view of the dictionary as MarshalJSON for YAML encoders.
func (d *Dictionary) MarshalYAML() (interface{}, error) {
	return d.exportMap(), nil
}

func (d *Dictionary) exportMap() *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any](d.Len())
	if d == nil {
		return om
	}
	for _, e := range d.Entries {
		switch e.Kind {
		case EntryDict:
			om.Set(e.Keyword.String(), e.Value.Dict.exportMap())
		case EntryReference:
			om.Set(Variable(e.Keyword.Name).String(), nil)
		case EntryDirective:
			om.Set("#"+e.Keyword.Name, e.Value.String())
		default:
			om.Set(e.Keyword.String(), e.Value.String())
		}
	}
	return om
}
