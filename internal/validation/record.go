package validation

import (
	"strings"

	"github.com/shohag/airegistry/internal/models"
)

// ValidateRecord checks an already stored record, such as one read back from
// an export file. It applies the submission rules to the persisted fields and
// also requires the id and creation time.
func (v *Validator) ValidateRecord(ep models.Endpoint) (models.Endpoint, error) {
	errs := &Errors{}

	if blank(ep.ID) {
		errs.add(FieldID, MsgIDRequired)
	}
	if blank(ep.EndpointID) {
		errs.add(FieldEndpointID, MsgEndpointIDRequired)
	}

	method, known := models.ParseMethod(string(ep.Method))
	switch {
	case method == "":
		errs.add(FieldMethod, MsgMethodRequired)
	case !known:
		errs.add(FieldMethod, MsgMethodUnsupported)
	}

	if blank(ep.Description) {
		errs.add(FieldDescription, MsgDescriptionRequired)
	}
	if !ValidURL(ep.URL) {
		errs.add(FieldURL, MsgInvalidURL)
	}
	if blank(ep.Creator) {
		errs.add(FieldCreator, MsgCreatorRequired)
	}
	if ep.CreatedAt.IsZero() {
		errs.add(FieldCreatedAt, MsgCreatedAtRequired)
	}

	if err := errs.orNil(); err != nil {
		return models.Endpoint{}, err
	}

	return models.Endpoint{
		ID:          strings.TrimSpace(ep.ID),
		EndpointID:  strings.TrimSpace(ep.EndpointID),
		Method:      method,
		Description: strings.TrimSpace(ep.Description),
		URL:         strings.TrimSpace(ep.URL),
		Creator:     strings.TrimSpace(ep.Creator),
		CreatedAt:   ep.CreatedAt.UTC(),
	}, nil
}

func (v *Validator) ValidateRecords(eps []models.Endpoint) ([]models.Endpoint, error) {
	accepted := make([]models.Endpoint, 0, len(eps))
	var batchErrors []IndexedError

	for i, ep := range eps {
		rec, err := v.ValidateRecord(ep)
		if err != nil {
			batchErrors = append(batchErrors, IndexedError{Index: i, Err: err.(*Errors)})
			continue
		}
		accepted = append(accepted, rec)
	}

	if len(batchErrors) > 0 {
		return nil, &BatchError{Errors: batchErrors}
	}
	return accepted, nil
}
