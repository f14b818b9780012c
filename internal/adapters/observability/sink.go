package observability

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

// LogSink emits orchestration events as structured log records. Events are
// audit output for the console/UI, never control flow.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(l zerolog.Logger) *LogSink { return &LogSink{log: l} }

func (s *LogSink) Emit(category domain.EventCategory, format string, args ...any) {
	ObserveEvent(string(category))
	ev := s.log.Info()
	if category == domain.EventError {
		ev = s.log.Warn()
	}
	ev.Str("category", string(category)).Msg(fmt.Sprintf(format, args...))
}
