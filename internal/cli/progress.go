package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressReporter renders a terminal progress bar for page reads. The
// extraction service runs two page passes, so a fresh bar is started
// whenever a pass begins again at page one.
type progressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func (p *progressReporter) onPage(done, total int) {
	if p.quiet {
		return
	}
	if p.bar == nil || done == 1 {
		p.finish()
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Reading pages"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() { fmt.Println() }),
		)
	}
	_ = p.bar.Set(done)
}

func (p *progressReporter) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}
