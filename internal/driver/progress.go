package driver

import "time"

// Stage is one step of a racc run.
type Stage string

const (
	StageLoad      Stage = "load"
	StageValidate  Stage = "validate"
	StageTables    Stage = "tables"
	StageSerialize Stage = "serialize"
	StageBinary    Stage = "binary"
	StageReport    Stage = "report"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Event reports progress of one stage.
type Event struct {
	Stage   Stage
	Status  Status
	Detail  string
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}

// Stages lists the stages EmitTables runs for req, in order.
func (req *TablesRequest) Stages() []Stage {
	stages := []Stage{StageLoad, StageValidate, StageTables, StageSerialize}
	if req.BinaryPath != "" {
		stages = append(stages, StageBinary)
	}
	if req.VerbosePath != "" {
		stages = append(stages, StageReport)
	}
	return stages
}
