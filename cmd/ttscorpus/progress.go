package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// stageProgress draws one progress bar per pipeline stage. It is inert when
// the output is not a terminal.
type stageProgress struct {
	out     io.Writer
	enabled bool
	stage   string
	bar     *progressbar.ProgressBar
}

func newStageProgress(out io.Writer) *stageProgress {
	return &stageProgress{out: out, enabled: isTerminal(out)}
}

func (p *stageProgress) Update(stage string, done, total int) {
	if !p.enabled {
		return
	}
	if p.bar == nil || stage != p.stage {
		p.Finish()
		p.stage = stage
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(stage),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

func (p *stageProgress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
