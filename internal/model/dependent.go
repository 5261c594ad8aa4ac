package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DependentStore removes or detaches rows that reference a teacher link or
// a profile. Both operations return the number of affected rows.
type DependentStore interface {
	Delete(ctx context.Context, entity DependentEntity, ownerID uuid.UUID) (int64, error)
	Detach(ctx context.Context, entity DependentEntity, ownerID uuid.UUID) (int64, error)
}

// DependentEntity names a table whose rows reference a teacher link or a profile.
type DependentEntity string

const (
	EntityAvailability DependentEntity = "availability"
	EntityClasses      DependentEntity = "classes"
	EntityLessons      DependentEntity = "lessons"
	EntityReports      DependentEntity = "reports"
	EntityEvaluations  DependentEntity = "evaluations"
	EntityNotes        DependentEntity = "notes"
)

// CleanupAction is what happens to a dependent row when its owner goes away.
type CleanupAction string

const (
	// CleanupDelete removes the dependent rows.
	CleanupDelete CleanupAction = "delete"
	// CleanupDetach clears the owner reference and keeps the rows.
	CleanupDetach CleanupAction = "detach"
)

// CleanupRule pairs an entity with its cleanup action.
type CleanupRule struct {
	Entity DependentEntity
	Action CleanupAction
}

// TeacherCleanupPolicy runs, in order, before a teacher link is deleted.
var TeacherCleanupPolicy = []CleanupRule{
	{Entity: EntityAvailability, Action: CleanupDelete},
	{Entity: EntityClasses, Action: CleanupDetach},
	{Entity: EntityLessons, Action: CleanupDetach},
	{Entity: EntityReports, Action: CleanupDetach},
	{Entity: EntityEvaluations, Action: CleanupDetach},
}

// ProfileCleanupPolicy runs before a profile is deleted.
var ProfileCleanupPolicy = []CleanupRule{
	{Entity: EntityNotes, Action: CleanupDelete},
}

// StepStatus is the outcome of one delete step.
type StepStatus string

const (
	StepDone    StepStatus = "done"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// DeleteStep records one step of a user deletion.
type DeleteStep struct {
	Name     string
	Status   StepStatus
	Affected int64
	Err      error
}

// DeleteReport aggregates the outcome of every step of a user deletion.
type DeleteReport struct {
	ProfileID uuid.UUID
	TeacherID *uuid.UUID
	Steps     []DeleteStep
}

// Record appends a step outcome.
func (r *DeleteReport) Record(name string, affected int64, err error) {
	step := DeleteStep{Name: name, Status: StepDone, Affected: affected}
	if err != nil {
		step.Status = StepFailed
		step.Err = err
	}
	r.Steps = append(r.Steps, step)
}

// Skip appends a step that did not run.
func (r *DeleteReport) Skip(name string) {
	r.Steps = append(r.Steps, DeleteStep{Name: name, Status: StepSkipped})
}

// Partial reports whether any step failed.
func (r DeleteReport) Partial() bool {
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			return true
		}
	}
	return false
}

// Err joins the errors of all failed steps.
func (r DeleteReport) Err() error {
	var errs []error
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, s.Err))
		}
	}
	return errors.Join(errs...)
}
