package intake

import "strings"

// namePlaceholder is used when neither the model nor the caller supplied a
// name, so rendered greetings always have something to address.
const namePlaceholder = "there"

// Merge reconciles the model-extracted record with caller-supplied metadata.
// For name, email, and phone the extracted value wins when non-empty, then
// the caller's value, then the placeholder (name) or null. Source defaults
// to the caller's value, falling back to defaultSource.
func Merge(rec LeadRecord, req *IntakeRequest, defaultSource string) Result {
	name := mergeField(rec.Name, req.FromName)
	if name == nil {
		name = strptr(namePlaceholder)
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = defaultSource
	}
	if source == "" {
		source = "gmail"
	}

	return Result{
		Name:     name,
		Email:    mergeField(rec.Email, req.FromEmail),
		Phone:    mergeField(rec.Phone, req.Phone),
		LeadType: rec.LeadType,
		Priority: rec.Priority,
		Summary:  rec.Summary,
		Reply:    rec.Reply,
		Source:   source,
		Error:    rec.Error,
	}
}

func mergeField(extracted *string, caller string) *string {
	if extracted != nil && strings.TrimSpace(*extracted) != "" {
		return extracted
	}
	if caller = strings.TrimSpace(caller); caller != "" {
		return strptr(caller)
	}
	return nil
}
