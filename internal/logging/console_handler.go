package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

// consoleHandler writes a human-oriented header per record followed by
// indented fields. Component, upload, stage, request id and decision outcome
// are lifted into the header; everything else is listed below it.
type consoleHandler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     *slog.LevelVar
	preset    []slog.Attr
	groups    []string
	addSource bool
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, out: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// consoleHeader holds the fields rendered on the first line of a record.
type consoleHeader struct {
	component string
	uploadID  string
	stage     string
	requestID string
	result    string
	reason    string
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	when := record.Time
	if when.IsZero() {
		when = time.Now()
	}

	var fields []field
	for _, attr := range h.preset {
		fields = appendFlattened(fields, h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendFlattened(fields, h.groups, attr)
		return true
	})
	head, rest := liftHeader(lastWins(fields))

	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s", when.In(time.Local).Format(consoleTimeLayout), levelName(record.Level))
	if head.component != "" {
		fmt.Fprintf(&buf, " [%s]", head.component)
	}
	if subject := head.subject(); subject != "" {
		buf.WriteByte(' ')
		buf.WriteString(subject)
	}
	buf.WriteString(" – ")
	buf.WriteString(message)
	if head.result != "" {
		fmt.Fprintf(&buf, " => %s", head.result)
		if head.reason != "" {
			fmt.Fprintf(&buf, " (%s)", head.reason)
		}
	}
	if src := record.Source(); h.addSource && src != nil {
		fmt.Fprintf(&buf, " [%s:%d]", filepath.Base(src.File), src.Line)
	}
	buf.WriteByte('\n')
	for _, f := range rest {
		fmt.Fprintf(&buf, "    - %s: %s\n", f.key, renderValue(f.value, true))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func liftHeader(fields []field) (consoleHeader, []field) {
	var head consoleHeader
	var rest []field
	for _, f := range fields {
		target := head.slot(f.key)
		if target == nil {
			rest = append(rest, f)
			continue
		}
		*target = renderValue(f.value, false)
	}
	return head, rest
}

func (c *consoleHeader) slot(key string) *string {
	switch key {
	case FieldComponent:
		return &c.component
	case FieldUploadID:
		return &c.uploadID
	case FieldStage:
		return &c.stage
	case FieldCorrelationID:
		return &c.requestID
	case FieldDecisionResult:
		return &c.result
	case FieldDecisionReason:
		return &c.reason
	default:
		return nil
	}
}

func (c consoleHeader) subject() string {
	var parts []string
	if id := strings.TrimSpace(c.uploadID); id != "" {
		parts = append(parts, "Upload "+id)
	}
	if stage := strings.TrimSpace(c.stage); stage != "" {
		if len(parts) == 0 {
			parts = append(parts, stage)
		} else {
			parts = append(parts, "("+stage+")")
		}
	}
	if rid := strings.TrimSpace(c.requestID); rid != "" && rid != strings.TrimSpace(c.uploadID) {
		parts = append(parts, "req="+rid)
	}
	return strings.Join(parts, " ")
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.derive()
	next.preset = append(next.preset, attrs...)
	return next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.derive()
	next.groups = append(next.groups, name)
	return next
}

func (h *consoleHandler) derive() *consoleHandler {
	return &consoleHandler{
		mu:        h.mu,
		out:       h.out,
		level:     h.level,
		addSource: h.addSource,
		preset:    append([]slog.Attr(nil), h.preset...),
		groups:    append([]string(nil), h.groups...),
	}
}

type field struct {
	key   string
	value slog.Value
}

// lastWins drops empty keys and keeps the most recent value for repeated
// keys at the position of their first occurrence.
func lastWins(fields []field) []field {
	index := make(map[string]int, len(fields))
	out := make([]field, 0, len(fields))
	for _, f := range fields {
		if f.key == "" {
			continue
		}
		if i, seen := index[f.key]; seen {
			out[i].value = f.value
			continue
		}
		index[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

func appendFlattened(dst []field, prefix []string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		nested := prefix
		if attr.Key != "" {
			nested = append(append([]string(nil), prefix...), attr.Key)
		}
		for _, member := range value.Group() {
			dst = appendFlattened(dst, nested, member)
		}
		return dst
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(prefix, ".") + "." + key
	}
	return append(dst, field{key: key, value: value})
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// renderValue formats v for console output. Quoted output wraps strings that
// contain whitespace, '=' or quotes.
func renderValue(v slog.Value, quote bool) string {
	v = v.Resolve()
	var s string
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().In(time.Local).Format(consoleTimeLayout)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if quote && needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsFunc(s, func(r rune) bool {
		return r <= ' ' || r == '=' || r == '"'
	})
}
