// Package transfer reads and writes endpoint YAML files for bulk import and
// export.
package transfer

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shohag/airegistry/internal/models"
)

type ExportFile struct {
	Endpoints []models.Endpoint `yaml:"endpoints"`
}

// submissionYAML leaves isJsonResponse nil when the key is absent so the
// form default can apply.
type submissionYAML struct {
	EndpointID      string                 `yaml:"endpointId"`
	Method          string                 `yaml:"method"`
	Description     string                 `yaml:"description"`
	URL             string                 `yaml:"url"`
	PromptExample   string                 `yaml:"promptExample"`
	ResponseExample string                 `yaml:"responseExample"`
	IsJSONResponse  *bool                  `yaml:"isJsonResponse"`
	Creator         string                 `yaml:"creator"`
	TestCases       []models.TestCaseInput `yaml:"testCases"`
}

// ReadSubmissions decodes an import file. An empty document yields no
// submissions.
func ReadSubmissions(r io.Reader) ([]models.Submission, error) {
	var doc struct {
		Endpoints []submissionYAML `yaml:"endpoints"`
	}

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	subs := make([]models.Submission, 0, len(doc.Endpoints))
	for _, e := range doc.Endpoints {
		sub := models.NewSubmission()
		sub.EndpointID = e.EndpointID
		sub.Method = e.Method
		sub.Description = e.Description
		sub.URL = e.URL
		sub.PromptExample = e.PromptExample
		sub.ResponseExample = e.ResponseExample
		if e.IsJSONResponse != nil {
			sub.IsJSONResponse = *e.IsJSONResponse
		}
		sub.Creator = e.Creator
		sub.TestCases = e.TestCases
		subs = append(subs, sub)
	}
	return subs, nil
}

func WriteEndpoints(w io.Writer, eps []models.Endpoint) error {
	if eps == nil {
		eps = []models.Endpoint{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ExportFile{Endpoints: eps}); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func ReadEndpoints(r io.Reader) ([]models.Endpoint, error) {
	var doc ExportFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return doc.Endpoints, nil
}
