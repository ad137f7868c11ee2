package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/homedash/internal/event"
)

// Format is an event file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// EventFile reads events stored as JSON or YAML. The document is either a
// list of events or an object with an "items" list, which is the shape of a
// Google Calendar events.list response.
type EventFile struct {
	path   string
	logger *zap.Logger
}

// NewEventFile returns a source reading path on every Fetch.
func NewEventFile(path string, opts ...Option) *EventFile {
	o := buildOptions(opts)
	return &EventFile{path: path, logger: o.logger.With(zap.String("source", path))}
}

// Name implements Source.
func (f *EventFile) Name() string {
	return "file:" + f.path
}

// Fetch decodes the file and returns the events overlapping [from, to).
func (f *EventFile) Fetch(ctx context.Context, from, to time.Time) ([]event.CalendarEvent, error) {
	format, err := FormatFromPath(f.path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening event file: %w", err)
	}
	defer func() { _ = file.Close() }()

	events, err := DecodeEvents(file, format, f.path, f.logger)
	if err != nil {
		return nil, err
	}
	return filterWindow(events, from, to), nil
}

type eventList struct {
	Items []event.CalendarEvent `json:"items" yaml:"items"`
}

// DecodeEvents reads an event document. Records without a parsable start are
// logged and skipped; records without an ID get a stable one derived from
// namespace, start and summary.
func DecodeEvents(r io.Reader, format Format, namespace string, logger *zap.Logger) ([]event.CalendarEvent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	var raw []event.CalendarEvent
	switch format {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatYAML:
		raw, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s events: %w", format, err)
	}

	events := make([]event.CalendarEvent, 0, len(raw))
	for _, e := range raw {
		if _, ok := e.StartInstant(); !ok {
			logger.Warn("skipping event", zap.String("id", e.ID), zap.String("summary", e.Summary), zap.Error(event.ErrMissingStart))
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace+"|"+e.Start.Date+e.Start.DateTime+"|"+e.Summary)).String()
		}
		status, ok := event.ParseStatus(string(e.Status))
		if !ok {
			logger.Warn("unknown event status, using confirmed", zap.String("id", e.ID), zap.String("status", string(e.Status)))
		}
		e.Status = status
		events = append(events, e)
	}
	return events, nil
}

func decodeJSON(data []byte) ([]event.CalendarEvent, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var list []event.CalendarEvent
		err := json.Unmarshal(data, &list)
		return list, err
	}
	var wrapped eventList
	err := json.Unmarshal(data, &wrapped)
	return wrapped.Items, err
}

func decodeYAML(data []byte) ([]event.CalendarEvent, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var list []event.CalendarEvent
		err := node.Decode(&list)
		return list, err
	}
	var wrapped eventList
	err := node.Decode(&wrapped)
	return wrapped.Items, err
}

// EncodeEvents writes events as a JSON or YAML list.
func EncodeEvents(w io.Writer, format Format, events []event.CalendarEvent) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(events); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}
