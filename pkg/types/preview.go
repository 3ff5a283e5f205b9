package types

import "fmt"

// ChangeType classifies a single resource change reported by a what-if
// evaluation.
type ChangeType string

const (
	ChangeTypeCreate      ChangeType = "Create"
	ChangeTypeDelete      ChangeType = "Delete"
	ChangeTypeDeploy      ChangeType = "Deploy"
	ChangeTypeIgnore      ChangeType = "Ignore"
	ChangeTypeModify      ChangeType = "Modify"
	ChangeTypeNoChange    ChangeType = "NoChange"
	ChangeTypeUnsupported ChangeType = "Unsupported"
)

// DeploymentPreview is the result of a what-if evaluation. It describes the
// diff the deployment would apply without mutating any cloud state.
type DeploymentPreview struct {
	Status  string
	Changes []*DeploymentPreviewChange
}

// DeploymentPreviewChange is one resource-level entry in the preview diff.
type DeploymentPreviewChange struct {
	ChangeType        ChangeType
	ResourceID        string
	UnsupportedReason string
}

// Summary renders a one-line count of changes by type.
func (p *DeploymentPreview) Summary() string {
	counts := map[ChangeType]int{}
	for _, c := range p.Changes {
		counts[c.ChangeType]++
	}
	return fmt.Sprintf("create=%d, modify=%d, delete=%d, nochange=%d, ignore=%d",
		counts[ChangeTypeCreate], counts[ChangeTypeModify], counts[ChangeTypeDelete],
		counts[ChangeTypeNoChange], counts[ChangeTypeIgnore])
}
