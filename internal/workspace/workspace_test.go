package workspace

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/store"
	"resumeforge/internal/types"
)

var testLogger = errors.NewLogger(slog.LevelError)

// fakeAI scripts parse/score results and records what it was called with.
type fakeAI struct {
	mu          sync.Mutex
	parseResult types.ResumeData
	parseErr    error
	scoreResult types.AtsAnalysis
	scoreErr    error

	parseCalls  int
	scoreCalls  int
	scoredWith  types.ResumeData
	scoredJob   string
	blockParse  chan struct{}
}

func (f *fakeAI) ParseResume(ctx context.Context, rawText string) (types.ResumeData, *ai.TokenUsage, error) {
	f.mu.Lock()
	f.parseCalls++
	block := f.blockParse
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.parseErr != nil {
		return types.ResumeData{}, nil, f.parseErr
	}
	return f.parseResult.Clone(), nil, nil
}

func (f *fakeAI) ScoreResume(ctx context.Context, resume types.ResumeData, jobDescription string) (types.AtsAnalysis, *ai.TokenUsage, error) {
	f.mu.Lock()
	f.scoreCalls++
	f.scoredWith = resume.Clone()
	f.scoredJob = jobDescription
	f.mu.Unlock()
	if f.scoreErr != nil {
		return types.AtsAnalysis{}, nil, f.scoreErr
	}
	return f.scoreResult, nil, nil
}

func parsedResume() types.ResumeData {
	return types.ResumeData{
		Name:    "Jane Doe",
		Contact: types.Contact{Phone: "555-0100", Email: "jane@example.com", Location: "Portland, OR"},
		Summary: "Engineer.",
		Experience: []types.Experience{
			{Company: "Acme", JobTitle: "Engineer", Dates: "2020 - Present", Description: []string{"Did things"}},
		},
		Skills: []types.Skill{{Category: "Languages", Details: "Go"}},
	}
}

func newTestController(t *testing.T, fake *fakeAI) *Controller {
	t.Helper()

	cfg := &config.StorageConfig{Driver: "file", Path: filepath.Join(t.TempDir(), "resumes.json")}
	resumes, err := store.NewFileStore(cfg, testLogger)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	t.Cleanup(func() { resumes.Close() })

	return NewController(fake, fake, resumes, "tester", testLogger)
}

func TestFormatWithoutJobDescription(t *testing.T) {
	fake := &fakeAI{parseResult: parsedResume()}
	c := newTestController(t, fake)

	snap, err := c.Format(context.Background(), "raw resume text", "")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if snap.Status != StatusSuccess {
		t.Errorf("Status = %s, want %s", snap.Status, StatusSuccess)
	}
	if snap.Resume == nil || snap.Resume.Name != "Jane Doe" {
		t.Errorf("Resume not adopted: %+v", snap.Resume)
	}
	if snap.Analysis != nil {
		t.Error("No job description given, analysis should be nil")
	}
	if fake.scoreCalls != 0 {
		t.Errorf("Scoring ran without a job description (%d calls)", fake.scoreCalls)
	}
}

func TestFormatWithJobDescriptionScoresFreshResume(t *testing.T) {
	fake := &fakeAI{
		parseResult: parsedResume(),
		scoreResult: types.AtsAnalysis{Score: 77, Suggestions: []string{"Add metrics"}},
	}
	c := newTestController(t, fake)

	snap, err := c.Format(context.Background(), "raw resume text", "Go developer role")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if snap.Status != StatusSuccess {
		t.Errorf("Status = %s, want %s", snap.Status, StatusSuccess)
	}
	if snap.Analysis == nil || snap.Analysis.Score != 77 {
		t.Errorf("Analysis not adopted: %+v", snap.Analysis)
	}
	// Scoring must see the resume extracted in this same request chain.
	if fake.scoredWith.Name != "Jane Doe" {
		t.Errorf("Scoring saw resume %q, want the fresh extraction", fake.scoredWith.Name)
	}
	if fake.scoredJob != "Go developer role" {
		t.Errorf("Scoring saw job description %q", fake.scoredJob)
	}
}

func TestFormatEmptyInputShortCircuits(t *testing.T) {
	fake := &fakeAI{parseResult: parsedResume()}
	c := newTestController(t, fake)

	snap, err := c.Format(context.Background(), "   \n\t  ", "")
	if err == nil {
		t.Fatal("Expected a validation error for blank input")
	}
	if snap.Status != StatusError {
		t.Errorf("Status = %s, want %s", snap.Status, StatusError)
	}
	if fake.parseCalls != 0 {
		t.Errorf("Extraction must not run for blank input (%d calls)", fake.parseCalls)
	}
}

func TestScoringFailureRetainsResume(t *testing.T) {
	fake := &fakeAI{
		parseResult: parsedResume(),
		scoreErr:    errors.NewAIError(errors.ErrCodeAIServiceFailed, "scoring blew up", nil),
	}
	c := newTestController(t, fake)

	snap, err := c.Format(context.Background(), "raw resume text", "some role")
	if err == nil {
		t.Fatal("Expected the scoring error to surface")
	}
	if snap.Status != StatusError {
		t.Errorf("Status = %s, want %s", snap.Status, StatusError)
	}
	if snap.Resume == nil || snap.Resume.Name != "Jane Doe" {
		t.Error("Extracted resume must be retained when scoring fails")
	}
	if snap.Analysis != nil {
		t.Error("No analysis should be present after a scoring failure")
	}
	if snap.ErrorMessage != "scoring blew up" {
		t.Errorf("ErrorMessage = %q", snap.ErrorMessage)
	}
}

func TestSingleOutstandingOperation(t *testing.T) {
	block := make(chan struct{})
	fake := &fakeAI{parseResult: parsedResume(), blockParse: block}
	c := newTestController(t, fake)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Format(context.Background(), "raw text", "")
	}()

	// Wait until the first call is in flight.
	for c.Snapshot().Status != StatusParsing {
		time.Sleep(time.Millisecond)
	}

	if _, err := c.Format(context.Background(), "more text", ""); err == nil {
		t.Error("Second Format while parsing must be rejected")
	}
	if _, err := c.Save(context.Background()); err == nil {
		t.Error("Save while parsing must be rejected")
	}

	close(block)
	<-done

	if got := c.Snapshot().Status; got != StatusSuccess {
		t.Errorf("Status after unblocking = %s, want %s", got, StatusSuccess)
	}
}

func TestSaveAdoptsReturnedID(t *testing.T) {
	fake := &fakeAI{parseResult: parsedResume()}
	c := newTestController(t, fake)

	if _, err := c.Format(context.Background(), "raw text", ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	first, err := c.Save(context.Background())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first.CurrentID == "" {
		t.Fatal("Save did not adopt the assigned id")
	}

	// A second save reuses the id instead of creating a duplicate.
	second, err := c.Save(context.Background())
	if err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	if second.CurrentID != first.CurrentID {
		t.Errorf("Second save changed the current id: %s -> %s", first.CurrentID, second.CurrentID)
	}
}

func TestSaveWithoutResume(t *testing.T) {
	c := newTestController(t, &fakeAI{})
	if _, err := c.Save(context.Background()); err == nil {
		t.Error("Expected error saving an empty workspace")
	}
}

func TestLoadReplacesWorkspace(t *testing.T) {
	fake := &fakeAI{
		parseResult: parsedResume(),
		scoreResult: types.AtsAnalysis{Score: 50, Suggestions: []string{"x"}},
	}
	c := newTestController(t, fake)

	// Build and save record A with an analysis present.
	if _, err := c.Format(context.Background(), "resume A", "role"); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	snapA, err := c.Save(context.Background())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Build and save record B under a different name.
	other := parsedResume()
	other.Name = "John Smith"
	fake.parseResult = other
	c.Clear()
	if _, err := c.Format(context.Background(), "resume B", ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	snapB, err := c.Save(context.Background())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if snapB.CurrentID == snapA.CurrentID {
		t.Fatal("Expected distinct record ids")
	}

	// Load A back: analysis and job description reset, id adopted.
	snap, err := c.Load(context.Background(), snapA.CurrentID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Status != StatusIdle {
		t.Errorf("Status after load = %s, want %s", snap.Status, StatusIdle)
	}
	if snap.Resume == nil || snap.Resume.Name != "Jane Doe" {
		t.Errorf("Loaded resume = %+v, want record A's", snap.Resume)
	}
	if snap.CurrentID != snapA.CurrentID {
		t.Errorf("CurrentID = %s, want %s", snap.CurrentID, snapA.CurrentID)
	}
	if snap.Analysis != nil || snap.JobDescription != "" {
		t.Error("Load must reset analysis and job description")
	}
	if snap.RawText != "resume A" {
		t.Errorf("RawText = %q, want record A's raw text", snap.RawText)
	}
}

func TestLoadUnknownID(t *testing.T) {
	c := newTestController(t, &fakeAI{})
	if _, err := c.Load(context.Background(), "missing"); err == nil {
		t.Error("Expected error loading an unknown id")
	}
	if c.Snapshot().Status != StatusError {
		t.Error("Failed load should land in the error status")
	}
}

func TestClear(t *testing.T) {
	fake := &fakeAI{parseResult: parsedResume()}
	c := newTestController(t, fake)

	if _, err := c.Format(context.Background(), "raw text", ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if _, err := c.Save(context.Background()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	snap := c.Clear()
	if snap.Status != StatusIdle || snap.Resume != nil || snap.CurrentID != "" ||
		snap.RawText != "" || snap.Analysis != nil || snap.ErrorMessage != "" {
		t.Errorf("Clear left residual state: %+v", snap)
	}
}

func TestApplyEditReplacesOneField(t *testing.T) {
	fake := &fakeAI{parseResult: parsedResume()}
	c := newTestController(t, fake)

	if _, err := c.Format(context.Background(), "raw text", ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	snap, err := c.ApplyEdit("experience[0].jobTitle", "Staff Engineer")
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}
	if snap.Resume.Experience[0].JobTitle != "Staff Engineer" {
		t.Error("Edit was not applied")
	}
	if snap.Resume.Experience[0].Company != "Acme" {
		t.Error("Edit disturbed an unrelated field")
	}

	snap, err = c.RemoveListItem("skills[0]")
	if err != nil {
		t.Fatalf("RemoveListItem failed: %v", err)
	}
	if len(snap.Resume.Skills) != 0 {
		t.Errorf("Skills after removal = %+v", snap.Resume.Skills)
	}
}

func TestExportProducesDocumentAndFilename(t *testing.T) {
	fake := &fakeAI{parseResult: parsedResume()}
	c := newTestController(t, fake)

	if _, err := c.Format(context.Background(), "raw text", ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	data, filename, err := c.Export(context.Background(), types.TemplateClassic)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("Export returned no bytes")
	}
	if filename != "Jane_Doe_Resume.docx" {
		t.Errorf("Filename = %q", filename)
	}
	if c.Snapshot().Status != StatusSuccess {
		t.Error("Export should finish in the success status")
	}
}

func TestErrorMessagesReplaceEachOther(t *testing.T) {
	fake := &fakeAI{parseErr: errors.NewAIError(errors.ErrCodeAIServiceFailed, "first failure", nil)}
	c := newTestController(t, fake)

	c.Format(context.Background(), "raw text", "")
	if msg := c.Snapshot().ErrorMessage; msg != "first failure" {
		t.Fatalf("ErrorMessage = %q", msg)
	}

	c.Format(context.Background(), "  ", "")
	if msg := c.Snapshot().ErrorMessage; msg != "Please paste your resume text first" {
		t.Errorf("Second failure should replace the first message, got %q", msg)
	}

	fake.parseErr = nil
	fake.parseResult = parsedResume()
	if _, err := c.Format(context.Background(), "raw text", ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if msg := c.Snapshot().ErrorMessage; msg != "" {
		t.Errorf("Success should clear the error message, got %q", msg)
	}
}
