package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/keymill/keymill/internal/sysinfo"
)

// Sink consumes a finished report for display. The generation path never
// formats or prints anything; sinks own all presentation.
type Sink interface {
	Emit(rep *Report) error
}

// TextSink renders reports as human-readable console text.
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a Sink that writes formatted text to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit writes the report in the classic console layout: environment
// header, counts and timing, throughput, post-run memory, then the
// leading sample records as indexed hex lines.
func (s *TextSink) Emit(rep *Report) error {
	var b strings.Builder

	if rep.Before != nil {
		writeSnapshot(&b, rep.Before)
	}

	fmt.Fprintf(&b, "Generated %s unique 128-bit records in %v\n",
		humanize.Comma(int64(rep.Records)), rep.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "Rate: ~%s records/sec (~%.1f million/sec)\n",
		humanize.CommafWithDigits(rep.RatePerSec, 0), rep.RatePerSec/1_000_000)

	if rep.Fill != nil {
		fmt.Fprintf(&b, "Chunk fills: %s chunks, min %v / median %v / max %v\n",
			humanize.Comma(int64(rep.Fill.Chunks)),
			rep.Fill.MinChunk.Round(time.Microsecond),
			rep.Fill.MedianChunk.Round(time.Microsecond),
			rep.Fill.MaxChunk.Round(time.Microsecond))
	}

	if rep.After != nil {
		b.WriteString("\n=== Memory Usage After ===\n")
		fmt.Fprintf(&b, "Used Memory:  %s\n", humanize.IBytes(rep.After.UsedMemory))
	}

	if len(rep.Sample) > 0 {
		b.WriteString("\n")
		for i, rec := range rep.Sample {
			fmt.Fprintf(&b, "Record[%d] = %s\n", i, rec)
		}
	}

	if rep.Fingerprint != "" {
		fmt.Fprintf(&b, "\nFingerprint: %s\n", rep.Fingerprint)
	}

	_, err := io.WriteString(s.w, b.String())
	return err
}

func writeSnapshot(b *strings.Builder, snap *sysinfo.Snapshot) {
	b.WriteString("=== System Information ===\n")
	fmt.Fprintf(b, "OS: %s (version: %s), kernel: %s\n", snap.OSName, snap.OSVersion, snap.KernelVersion)
	fmt.Fprintf(b, "CPU Count: %d\n", snap.CPUCount)
	fmt.Fprintf(b, "CPU Brand: %s\n", snap.CPUBrand)
	fmt.Fprintf(b, "Total Memory: %s\n", humanize.IBytes(snap.TotalMemory))
	fmt.Fprintf(b, "Used Memory:  %s\n", humanize.IBytes(snap.UsedMemory))
	b.WriteString("==========================\n\n")
}

// JSONSink renders reports as indented JSON for scripting.
type JSONSink struct {
	w io.Writer
}

// NewJSONSink creates a Sink that writes JSON to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

// Emit writes the report as a single indented JSON document.
func (s *JSONSink) Emit(rep *Report) error {
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
