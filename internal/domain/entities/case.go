package entities

import (
	"path/filepath"
	"strings"
)

// Status represents the lifecycle state of a case
type Status string

const (
	// StatusPending indicates the case has been discovered but not invoked
	StatusPending Status = "pending"

	// StatusRunning indicates the pipeline is executing against the case
	StatusRunning Status = "running"

	// StatusCompleted indicates all stages succeeded
	StatusCompleted Status = "completed"

	// StatusFailed indicates a stage exhausted its fallbacks
	StatusFailed Status = "failed"
)

// IsTerminal reports whether the status is a run-terminating state.
// Terminal cases may be re-invoked, which restarts them at running.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// AudioPayload is an opaque audio attachment. Bytes are never decoded or
// transcoded, only forwarded to providers.
type AudioPayload struct {
	// Path is set for cases discovered from a folder; Data is loaded from
	// it when the pipeline runs
	Path string
	// Data holds the raw audio bytes when already in memory
	Data []byte
	// Name is the original file name, used for format detection
	Name string
}

// Ext returns the lowercase audio file extension without the dot
func (a *AudioPayload) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(a.Name)), ".")
}

// PipelineResult holds the outputs of one pipeline run. It is owned by its
// case and replaced wholesale on re-run. A failed run keeps whatever
// partial outputs were produced before the failure.
type PipelineResult struct {
	Transcript      string
	GeneratedReport string
	Error           string
}

// Case is one unit of work: a dictation plus an optional reference report
// and a chosen template.
type Case struct {
	ID            string
	Name          string
	Path          string
	Audio         *AudioPayload
	ReferencePath string
	Reference     string
	TemplateKey   string
	Status        Status
	Result        *PipelineResult
}

// HasReference reports whether a reference report is available for
// comparison, either as loaded text or as a discovered file.
func (c *Case) HasReference() bool {
	return c.Reference != "" || c.ReferencePath != ""
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".webm": true,
	".m4a":  true,
	".mpga": true,
	".mpeg": true,
}

var referenceExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// IsAudioFile reports whether the file name has a recognized audio
// container extension
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsReferenceFile reports whether the file name has a recognized plain-text
// reference extension
func IsReferenceFile(name string) bool {
	return referenceExtensions[strings.ToLower(filepath.Ext(name))]
}
