package domain

import "strings"

type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

func (i *Image) Empty() bool {
	return i == nil || len(i.Data) == 0
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusFailed  Status = "error"
	StatusSuccess Status = "success"
)

// Result is the outcome of the latest submission attempt. Only the payload matching
// Status is set: ImageURL for success, Error and Kind for error.
type Result struct {
	Status   Status `json:"status"`
	Attempt  uint64 `json:"attempt"`
	ImageURL string `json:"image_url,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     Kind   `json:"kind,omitempty"`
}

func Idle() Result {
	return Result{Status: StatusIdle}
}

func Loading(attempt uint64) Result {
	return Result{Status: StatusLoading, Attempt: attempt}
}

func Succeeded(attempt uint64, imageURL string) Result {
	return Result{Status: StatusSuccess, Attempt: attempt, ImageURL: imageURL}
}

func Failed(attempt uint64, err error) Result {
	return Result{Status: StatusFailed, Attempt: attempt, Error: err.Error(), Kind: KindOf(err)}
}

func (r Result) IsLoading() bool {
	return r.Status == StatusLoading
}

// Snapshot is a consistent copy of a form's fields.
type Snapshot struct {
	ImageName  string `json:"image_name,omitempty"`
	ImageSize  int    `json:"image_size"`
	Preview    string `json:"preview,omitempty"`
	Prompt     string `json:"prompt"`
	WebhookURL string `json:"webhook_url"`
	Loopback   bool   `json:"loopback"`
	Result     Result `json:"result"`
}

// Ready reports whether every field required for a submission is present.
func (s Snapshot) Ready() bool {
	return s.ImageSize > 0 && strings.TrimSpace(s.Prompt) != "" && strings.TrimSpace(s.WebhookURL) != ""
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)
