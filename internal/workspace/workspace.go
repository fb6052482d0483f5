// Package workspace owns the mutable editing session: the current resume,
// its analysis, and a status field that tracks the one outstanding
// operation. All mutation goes through the controller; renderers and
// callers only ever see copies.
package workspace

import (
	"context"
	"strings"
	"sync"

	"resumeforge/internal/ai"
	"resumeforge/internal/docx"
	"resumeforge/internal/errors"
	"resumeforge/internal/render"
	"resumeforge/internal/store"
	"resumeforge/internal/types"
)

// Status is the workspace lifecycle state. Any status can fall back to idle
// or error; none of them is terminal.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusParsing     Status = "parsing"
	StatusAnalyzing   Status = "analyzing"
	StatusGenerating  Status = "generating"
	StatusSaving      Status = "saving"
	StatusLoadingData Status = "loading_data"
	StatusSuccess     Status = "success"
	StatusError       Status = "error"
)

// ResumeAI is the slice of the AI provider the controller needs.
type ResumeAI interface {
	ParseResume(ctx context.Context, rawText string) (types.ResumeData, *ai.TokenUsage, error)
	ScoreResume(ctx context.Context, resume types.ResumeData, jobDescription string) (types.AtsAnalysis, *ai.TokenUsage, error)
}

// Snapshot is a read-only copy of the workspace state.
type Snapshot struct {
	Status         Status
	ErrorMessage   string
	Resume         *types.ResumeData
	Analysis       *types.AtsAnalysis
	RawText        string
	JobDescription string
	CurrentID      string
}

// Controller serializes every workspace operation: while one is in flight
// a second submit, save or export is rejected instead of queued.
type Controller struct {
	parser  ResumeAI
	scorer  ResumeAI
	resumes store.Store
	userID  string
	logger  *errors.Logger

	mu             sync.Mutex
	status         Status
	errorMessage   string
	resume         *types.ResumeData
	analysis       *types.AtsAnalysis
	rawText        string
	jobDescription string
	currentID      string
}

// NewController wires the AI operations and store into a fresh idle
// workspace scoped to one user.
func NewController(parser, scorer ResumeAI, resumes store.Store, userID string, logger *errors.Logger) *Controller {
	return &Controller{
		parser:  parser,
		scorer:  scorer,
		resumes: resumes,
		userID:  userID,
		logger:  logger,
		status:  StatusIdle,
	}
}

// Snapshot returns a copy of the current state. The resume is cloned so the
// caller can never alias the controller's writable copy.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// busy reports whether an operation is outstanding. Held under mu.
func busy(s Status) bool {
	switch s {
	case StatusParsing, StatusAnalyzing, StatusGenerating, StatusSaving, StatusLoadingData:
		return true
	}
	return false
}

// begin moves the workspace into an in-flight status, rejecting the request
// when another operation is already outstanding.
func (c *Controller) begin(s Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if busy(c.status) {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Another operation is in progress", nil).WithContext("status", string(c.status))
	}
	c.status = s
	return nil
}

// fail records the single visible error, replacing any previous one.
func (c *Controller) fail(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusError
	c.errorMessage = userMessage(err)
	return err
}

func (c *Controller) succeed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusSuccess
	c.errorMessage = ""
}

func userMessage(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

// Format runs extraction and, when a job description is present, scoring in
// the same request chain. Scoring always sees the resume produced by this
// call's extraction, never an older one. A scoring failure keeps the
// freshly extracted resume.
func (c *Controller) Format(ctx context.Context, rawText, jobDescription string) (Snapshot, error) {
	if strings.TrimSpace(rawText) == "" {
		err := errors.NewValidationError(errors.ErrCodeEmptyInput,
			"Please paste your resume text first", nil)
		return c.Snapshot(), c.fail(err)
	}
	if err := c.begin(StatusParsing); err != nil {
		return c.Snapshot(), err
	}

	c.logger.Debug("Parsing resume text", "bytes", len(rawText), "with_job_description", strings.TrimSpace(jobDescription) != "")
	resume, _, err := c.parser.ParseResume(ctx, rawText)
	if err != nil {
		return c.Snapshot(), c.fail(err)
	}

	c.mu.Lock()
	c.resume = &resume
	c.rawText = rawText
	c.jobDescription = jobDescription
	c.analysis = nil
	c.mu.Unlock()

	if strings.TrimSpace(jobDescription) != "" {
		c.setStatus(StatusAnalyzing)
		analysis, _, err := c.scorer.ScoreResume(ctx, resume, jobDescription)
		if err != nil {
			return c.Snapshot(), c.fail(err)
		}
		c.mu.Lock()
		c.analysis = &analysis
		c.mu.Unlock()
	}

	c.succeed()
	return c.Snapshot(), nil
}

// Score re-analyzes the current resume against a job description without
// re-running extraction.
func (c *Controller) Score(ctx context.Context, jobDescription string) (Snapshot, error) {
	c.mu.Lock()
	current := c.resume
	c.mu.Unlock()
	if current == nil {
		err := errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Format a resume before scoring it", nil)
		return c.Snapshot(), c.fail(err)
	}
	if err := c.begin(StatusAnalyzing); err != nil {
		return c.Snapshot(), err
	}

	analysis, _, err := c.scorer.ScoreResume(ctx, current.Clone(), jobDescription)
	if err != nil {
		return c.Snapshot(), c.fail(err)
	}

	c.mu.Lock()
	c.analysis = &analysis
	c.jobDescription = jobDescription
	c.mu.Unlock()

	c.succeed()
	return c.Snapshot(), nil
}

// Export renders the current resume to a document. The filename is derived
// from the resume name.
func (c *Controller) Export(ctx context.Context, template types.TemplateName) ([]byte, string, error) {
	c.mu.Lock()
	current := c.resume
	c.mu.Unlock()
	if current == nil {
		err := errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Nothing to export yet", nil)
		return nil, "", c.fail(err)
	}
	if err := c.begin(StatusGenerating); err != nil {
		return nil, "", err
	}

	data, err := docx.Export(current.Clone(), template)
	if err != nil {
		return nil, "", c.fail(err)
	}

	c.succeed()
	return data, docx.Filename(current.Name), nil
}

// Save persists the workspace and adopts the returned id as the current
// record marker. The in-memory state is only updated after the store
// confirms the write.
func (c *Controller) Save(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	current := c.resume
	record := types.SavedResume{
		ID:      c.currentID,
		RawText: c.rawText,
		UserID:  c.userID,
	}
	c.mu.Unlock()
	if current == nil {
		err := errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Nothing to save yet", nil)
		return c.Snapshot(), c.fail(err)
	}
	record.Name = current.Name
	record.ResumeData = current.Clone()

	if err := c.begin(StatusSaving); err != nil {
		return c.Snapshot(), err
	}

	saved, err := c.resumes.Save(ctx, record)
	if err != nil {
		return c.Snapshot(), c.fail(err)
	}

	c.mu.Lock()
	c.currentID = saved.ID
	c.mu.Unlock()

	c.succeed()
	return c.Snapshot(), nil
}

// Load replaces the workspace with a saved record. Job description and
// analysis are reset; the loaded id becomes the current record marker.
func (c *Controller) Load(ctx context.Context, id string) (Snapshot, error) {
	if err := c.begin(StatusLoadingData); err != nil {
		return c.Snapshot(), err
	}

	records, err := c.resumes.List(ctx, c.userID)
	if err != nil {
		return c.Snapshot(), c.fail(err)
	}

	for _, record := range records {
		if record.ID != id {
			continue
		}
		resume := record.ResumeData.Clone()
		c.mu.Lock()
		c.resume = &resume
		c.rawText = record.RawText
		c.currentID = record.ID
		c.jobDescription = ""
		c.analysis = nil
		c.status = StatusIdle
		c.errorMessage = ""
		c.mu.Unlock()
		return c.Snapshot(), nil
	}

	return c.Snapshot(), c.fail(notFound(id))
}

// Clear resets the workspace to its initial empty state.
func (c *Controller) Clear() Snapshot {
	c.mu.Lock()
	c.resume = nil
	c.analysis = nil
	c.rawText = ""
	c.jobDescription = ""
	c.currentID = ""
	c.status = StatusIdle
	c.errorMessage = ""
	c.mu.Unlock()
	return c.Snapshot()
}

// ApplyEdit replaces one leaf field and swaps in the full copy.
func (c *Controller) ApplyEdit(path, value string) (Snapshot, error) {
	return c.edit(func(current types.ResumeData) (types.ResumeData, error) {
		return render.SetField(current, path, value)
	})
}

// RemoveListItem drops one list element, preserving the rest.
func (c *Controller) RemoveListItem(path string) (Snapshot, error) {
	return c.edit(func(current types.ResumeData) (types.ResumeData, error) {
		return render.RemoveItem(current, path)
	})
}

func (c *Controller) edit(apply func(types.ResumeData) (types.ResumeData, error)) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if busy(c.status) {
		return c.snapshotLocked(), errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Another operation is in progress", nil)
	}
	if c.resume == nil {
		return c.snapshotLocked(), errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Nothing to edit yet", nil)
	}

	updated, err := apply(*c.resume)
	if err != nil {
		return c.snapshotLocked(), err
	}
	c.resume = &updated
	return c.snapshotLocked(), nil
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:         c.status,
		ErrorMessage:   c.errorMessage,
		RawText:        c.rawText,
		JobDescription: c.jobDescription,
		CurrentID:      c.currentID,
	}
	if c.resume != nil {
		clone := c.resume.Clone()
		snap.Resume = &clone
	}
	if c.analysis != nil {
		analysis := *c.analysis
		snap.Analysis = &analysis
	}
	return snap
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func notFound(id string) *errors.AppError {
	return errors.NewStorageError(errors.ErrCodeNotFound,
		"Saved resume not found", nil).WithContext("id", id)
}
