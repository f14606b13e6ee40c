package loader

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/gamedevtech/tao/model"
)

// LoadDescriptors reads and parses a descriptor YAML file.
// It validates the YAML against the JSON Schema before unmarshalling.
func LoadDescriptors(path string) (*model.DescriptorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading descriptor file")
	}

	if err := ValidateSchema(data); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "schema validation"),
			"run `glbindgen dump_schema` to see the expected descriptor layout")
	}

	return LoadDescriptorsNoValidate(data)
}

// LoadDescriptorsNoValidate parses descriptor YAML without schema validation.
// Used when schema validation has already been performed.
func LoadDescriptorsNoValidate(data []byte) (*model.DescriptorSet, error) {
	var set model.DescriptorSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, errors.Wrap(err, "parsing descriptor file")
	}
	return &set, nil
}
