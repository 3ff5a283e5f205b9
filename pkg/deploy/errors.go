package deploy

import "fmt"

// PrerequisiteError reports a missing precondition (no credential, no
// subscription) detected before any cloud call is made.
type PrerequisiteError struct {
	Reason      string
	Remediation string
	Err         error
}

func (e *PrerequisiteError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Remediation != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Remediation)
	}
	return msg
}

func (e *PrerequisiteError) Unwrap() error { return e.Err }

// TemplateValidationError reports a provider-side rejection of the
// declarative template, surfaced verbatim.
type TemplateValidationError struct {
	Err error
}

func (e *TemplateValidationError) Error() string {
	return fmt.Sprintf("template validation failed: %v", e.Err)
}

func (e *TemplateValidationError) Unwrap() error { return e.Err }

// DeploymentError reports a deployment that passed validation but failed
// during provider reconciliation. Partial cloud state is left as-is; the
// pipeline is safe to re-run.
type DeploymentError struct {
	DeploymentName string
	Err            error
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("deployment %s failed: %v", e.DeploymentName, e.Err)
}

func (e *DeploymentError) Unwrap() error { return e.Err }
