package dto

// ContactRequest defines the payload accepted by the contact form endpoint.
// Field order matters: validation reports the first failing field.
type ContactRequest struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank"`
	Message string `json:"message" validate:"notblank"`
}

// ContactUpdateRequest replaces the mutable fields of a stored contact.
type ContactUpdateRequest struct {
	ID      uint   `json:"id"`
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank"`
	Message string `json:"message" validate:"notblank"`
}

// EmailRequest is the payload for the direct send endpoint.
type EmailRequest struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"notblank"`
}

// SubmissionInput is the transport-neutral form of a submission fed to the pipeline.
type SubmissionInput struct {
	Name    string `validate:"notblank"`
	Email   string `validate:"notblank"`
	Subject string
	Message string `validate:"notblank"`
}

// ToSubmission converts the contact form payload.
func (r ContactRequest) ToSubmission() SubmissionInput {
	return SubmissionInput{Name: r.Name, Email: r.Email, Message: r.Message}
}

// ToSubmission converts the direct send payload.
func (r EmailRequest) ToSubmission() SubmissionInput {
	return SubmissionInput{Name: r.Name, Email: r.Email, Subject: r.Subject, Message: r.Message}
}

// MessageResponse is returned by endpoints that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a client-facing error description.
type ErrorResponse struct {
	Error string `json:"error"`
}
