package input

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ReadSamples parses one sample per line from r and sends them on out until
// r is exhausted or ctx is cancelled. Blank lines and lines starting with
// '#' are ignored; malformed lines are logged and skipped. out is closed
// when ReadSamples returns.
func ReadSamples(ctx context.Context, r io.Reader, out chan<- Sample, logger *log.Logger) error {
	defer close(out)
	if logger == nil {
		logger = log.New(io.Discard)
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		s, err := ParseSample(line, time.Now())
		if err != nil {
			logger.Warn("skipping tilt sample", "err", err)
			continue
		}

		select {
		case out <- s:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return scanner.Err()
}
