package forms

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Frame is one displayed step on the current path of a chain run.
type Frame struct {
	StepID   string
	Value    any
	Progress *Progress
}

// RunInfo identifies a chain run and the path of frames it is currently on.
type RunInfo struct {
	ID    string
	Trail []Frame
}

// Depth returns the number of frames on the current path.
func (r RunInfo) Depth() int {
	return len(r.Trail)
}

// Observer receives lifecycle callbacks for a chain run.
type Observer interface {
	StepShown(run RunInfo, frame Frame)
	StepAdvanced(run RunInfo, stepID string, value any)
	StepBacked(run RunInfo, stepID string)
	ChainQuit(run RunInfo)
	ChainCompleted(run RunInfo, value any)
}

// ObserverFuncs adapts optional functions into an Observer.
type ObserverFuncs struct {
	OnShown     func(run RunInfo, frame Frame)
	OnAdvanced  func(run RunInfo, stepID string, value any)
	OnBacked    func(run RunInfo, stepID string)
	OnQuit      func(run RunInfo)
	OnCompleted func(run RunInfo, value any)
}

func (o ObserverFuncs) StepShown(run RunInfo, frame Frame) {
	if o.OnShown != nil {
		o.OnShown(run, frame)
	}
}

func (o ObserverFuncs) StepAdvanced(run RunInfo, stepID string, value any) {
	if o.OnAdvanced != nil {
		o.OnAdvanced(run, stepID, value)
	}
}

func (o ObserverFuncs) StepBacked(run RunInfo, stepID string) {
	if o.OnBacked != nil {
		o.OnBacked(run, stepID)
	}
}

func (o ObserverFuncs) ChainQuit(run RunInfo) {
	if o.OnQuit != nil {
		o.OnQuit(run)
	}
}

func (o ObserverFuncs) ChainCompleted(run RunInfo, value any) {
	if o.OnCompleted != nil {
		o.OnCompleted(run, value)
	}
}

// LogObserver logs chain lifecycle events at debug level, quits at info.
func LogObserver(logger *zap.Logger) Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logObserver{logger: logger}
}

type logObserver struct {
	logger *zap.Logger
}

func (o *logObserver) StepShown(run RunInfo, frame Frame) {
	fields := []zap.Field{
		zap.String("run_id", run.ID),
		zap.String("step", frame.StepID),
		zap.Int("depth", run.Depth()),
	}
	if frame.Progress != nil {
		fields = append(fields, zap.String("progress", frame.Progress.Label()))
	}
	o.logger.Debug("step shown", fields...)
}

func (o *logObserver) StepAdvanced(run RunInfo, stepID string, _ any) {
	o.logger.Debug("step advanced", zap.String("run_id", run.ID), zap.String("step", stepID))
}

func (o *logObserver) StepBacked(run RunInfo, stepID string) {
	o.logger.Debug("step backed", zap.String("run_id", run.ID), zap.String("step", stepID))
}

func (o *logObserver) ChainQuit(run RunInfo) {
	o.logger.Info("chain abandoned", zap.String("run_id", run.ID), zap.Int("depth", run.Depth()))
}

func (o *logObserver) ChainCompleted(run RunInfo, _ any) {
	o.logger.Info("chain completed", zap.String("run_id", run.ID))
}

// session is the state of one launcher invocation: its identity, the stack of
// displayed frames and the observers to notify.
type session struct {
	id        string
	observers []Observer

	mu     sync.Mutex
	frames []Frame
}

func newSession(observers []Observer) *session {
	return &session{
		id:        uuid.NewString(),
		observers: observers,
	}
}

func (s *session) info() RunInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	trail := make([]Frame, len(s.frames))
	copy(trail, s.frames)
	return RunInfo{ID: s.id, Trail: trail}
}

func (s *session) shown(stepID string, value any, progress *Progress) {
	if s == nil {
		return
	}
	frame := Frame{StepID: stepID, Value: value, Progress: progress}
	s.mu.Lock()
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].StepID == stepID {
			s.frames = s.frames[:i]
			break
		}
	}
	s.frames = append(s.frames, frame)
	s.mu.Unlock()
	info := s.info()
	for _, obs := range s.observers {
		obs.StepShown(info, frame)
	}
}

func (s *session) advanced(stepID string, value any) {
	if s == nil {
		return
	}
	info := s.info()
	for _, obs := range s.observers {
		obs.StepAdvanced(info, stepID, value)
	}
}

func (s *session) backed(stepID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	if n := len(s.frames); n > 0 && s.frames[n-1].StepID == stepID {
		s.frames = s.frames[:n-1]
	}
	s.mu.Unlock()
	info := s.info()
	for _, obs := range s.observers {
		obs.StepBacked(info, stepID)
	}
}

func (s *session) quit() {
	info := s.info()
	for _, obs := range s.observers {
		obs.ChainQuit(info)
	}
}

func (s *session) completed(value any) {
	info := s.info()
	for _, obs := range s.observers {
		obs.ChainCompleted(info, value)
	}
}
