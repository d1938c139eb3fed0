package poi

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/FACorreiaa/go-cityinfo-api/internal/api"
	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

// patchDocumentField is the validation key used for patch document errors.
const patchDocumentField = "patchDocument"

// DecodePatch parses an RFC 6902 JSON Patch document.
func DecodePatch(body []byte) (jsonpatch.Patch, error) {
	patch, err := jsonpatch.DecodePatch(body)
	if err != nil {
		return nil, api.FieldError(patchDocumentField, fmt.Sprintf("The patch document is invalid: %s", err))
	}
	return patch, nil
}

// applyPatch applies patch to the JSON form of doc. The result must still
// decode into the update DTO; unknown members are rejected.
func applyPatch(doc types.PointOfInterestForUpdateDto, patch jsonpatch.Patch) (types.PointOfInterestForUpdateDto, error) {
	original, err := json.Marshal(doc)
	if err != nil {
		return types.PointOfInterestForUpdateDto{}, fmt.Errorf("failed to encode point of interest: %w", err)
	}

	patched, err := patch.Apply(original)
	if err != nil {
		return types.PointOfInterestForUpdateDto{}, api.FieldError(patchDocumentField, fmt.Sprintf("The patch document could not be applied: %s", err))
	}

	var out types.PointOfInterestForUpdateDto
	if err := api.DecodeJSON(patched, &out); err != nil {
		return types.PointOfInterestForUpdateDto{}, api.FieldError(patchDocumentField, err.Error())
	}
	return out, nil
}
