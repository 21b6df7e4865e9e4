package tree

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a configuration document written in YAML, for
// importing externally authored trees. The document is converted to
// its JSON form and decoded through the standard codec, so the same
// shape rules apply.
func DecodeYAML(data []byte) (*Group, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Message: "document is not valid YAML", Err: err}
	}
	if doc == nil {
		return nil, ErrEmptyDocument
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, &DecodeError{Message: "converting YAML document", Err: err}
	}
	return DecodeDocument(jsonData)
}
