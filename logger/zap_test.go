package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerTestSuite zap logger 测试套件.
type ZapLoggerTestSuite struct {
	suite.Suite
	buf *bytes.Buffer
	log Logger
}

func TestZapLoggerSuite(t *testing.T) {
	suite.Run(t, new(ZapLoggerTestSuite))
}

func (s *ZapLoggerTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.log = s.newLogger(&Config{Level: LevelDebug, ServiceName: "localed"})
}

func (s *ZapLoggerTestSuite) newLogger(config *Config) Logger {
	config.ApplyDefaults()
	log, err := newZapLogger(config, zapcore.AddSync(s.buf))
	s.Require().NoError(err)
	return log
}

// lastEntry 解析最后一行 JSON 日志.
func (s *ZapLoggerTestSuite) lastEntry() map[string]any {
	lines := strings.Split(strings.TrimSpace(s.buf.String()), "\n")
	s.Require().NotEmpty(lines)

	var entry map[string]any
	s.Require().NoError(json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func (s *ZapLoggerTestSuite) TestJSONOutput() {
	s.log.Info("hello")

	entry := s.lastEntry()
	s.Equal("hello", entry["msg"])
	s.Equal("INFO", entry["level"])
	s.Equal("localed", entry["service"])
	s.Contains(entry, "timestamp")
}

func (s *ZapLoggerTestSuite) TestLevelFilter() {
	log := s.newLogger(&Config{Level: LevelWarn})

	log.Info("dropped")
	s.Empty(s.buf.String())

	log.Warnf("kept %d", 1)
	s.Equal("kept 1", s.lastEntry()["msg"])
}

func (s *ZapLoggerTestSuite) TestWithFields() {
	s.log.With(
		String("locale", "en"),
		Int("count", 2),
		Bool("explicit", true),
		Duration("elapsed", time.Second),
		Err(errors.New("boom")),
		Any("tags", []string{"en", "ja"}),
	).Debug("fields")

	entry := s.lastEntry()
	s.Equal("en", entry["locale"])
	s.EqualValues(2, entry["count"])
	s.Equal(true, entry["explicit"])
	s.Equal("boom", entry["error"])
	s.Equal([]any{"en", "ja"}, entry["tags"])
}

func (s *ZapLoggerTestSuite) TestWithNoFieldsReturnsSelf() {
	s.Same(s.log, s.log.With())
}

func (s *ZapLoggerTestSuite) TestWithContext_Values() {
	ctx := ContextWithTraceID(context.Background(), "trace-1")
	ctx = ContextWithSpanID(ctx, "span-1")

	s.log.WithContext(ctx).Info("ctx")

	entry := s.lastEntry()
	s.Equal("trace-1", entry["traceId"])
	s.Equal("span-1", entry["spanId"])
}

func (s *ZapLoggerTestSuite) TestWithContext_SpanContext() {
	sc := oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    oteltrace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     oteltrace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		TraceFlags: oteltrace.FlagsSampled,
	})
	ctx := oteltrace.ContextWithSpanContext(context.Background(), sc)

	s.log.WithContext(ctx).Info("span")

	entry := s.lastEntry()
	s.Equal(sc.TraceID().String(), entry["traceId"])
	s.Equal(sc.SpanID().String(), entry["spanId"])
}

func (s *ZapLoggerTestSuite) TestWithContext_Empty() {
	s.Same(s.log, s.log.WithContext(context.Background()))
	//nolint:staticcheck // nil context 需要安全处理
	s.Same(s.log, s.log.WithContext(nil))
}

func (s *ZapLoggerTestSuite) TestConsoleFormat() {
	log := s.newLogger(&Config{Format: FormatConsole, EncodeLevel: EncodeLevelLower})

	log.Info("console line")

	out := s.buf.String()
	s.Contains(out, "info")
	s.Contains(out, "console line")
	s.False(json.Valid([]byte(strings.TrimSpace(out))))
}

func (s *ZapLoggerTestSuite) TestParseLevel() {
	s.Equal(zapcore.DebugLevel, parseLevel("DEBUG"))
	s.Equal(zapcore.WarnLevel, parseLevel("warning"))
	s.Equal(zapcore.ErrorLevel, parseLevel(LevelError))
	s.Equal(zapcore.InfoLevel, parseLevel("unknown"))
}
