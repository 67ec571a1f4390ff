package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/alexanderramin/nutrimind/internal/service"
)

// StatusPill returns a colored indicator for the model lifecycle state.
func StatusPill(s llm.ModelStatus) string {
	switch s {
	case llm.StatusReady:
		return StyleGreen.Render("● ready")
	case llm.StatusDownloading, llm.StatusLoading:
		return StyleYellow.Render("◐ " + string(s))
	case llm.StatusError:
		return StyleRed.Render("✖ error")
	case llm.StatusUnsupported:
		return StyleRed.Render("⊘ unsupported")
	default:
		return StyleDim.Render("○ not downloaded")
	}
}

// FormatModelStatus renders the model runtime state.
func FormatModelStatus(v service.ModelView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(v.Model), StatusPill(v.Status))

	if !v.Capabilities.CanRun && v.Capabilities.Reason != "" {
		b.WriteString(StyleRed.Render(v.Capabilities.Reason) + "\n")
	}
	if v.Status == llm.StatusDownloading {
		b.WriteString(FormatProgressLine(v.Progress) + "\n")
	}
	if v.LastError != "" {
		b.WriteString(StyleRed.Render("last error: "+v.LastError) + "\n")
	}

	narration := StyleYellow.Render("off")
	if v.Narration {
		narration = StyleGreen.Render("on")
	}
	b.WriteString(Dim("narration: ") + narration)
	return RenderBox("Model", b.String())
}

// FormatProgressLine renders "[███░░] 45%  1.2 GiB / 2.0 GiB  eta 30s".
func FormatProgressLine(p llm.Progress) string {
	line := RenderProgress(p.Percent/100, 20)
	if p.Total > 0 {
		line += "  " + Dim(Bytes(p.Bytes)+" / "+Bytes(p.Total))
	}
	if p.ETA > 0 {
		line += "  " + Dim("eta "+p.ETA.Round(time.Second).String())
	}
	return line
}
