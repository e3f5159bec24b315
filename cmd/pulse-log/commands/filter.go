package commands

import (
	"fmt"
	"io"

	"github.com/pulse-protocol/pulse-go/pkg/log"
)

// RunFilter copies the matching events of a trace file into a new trace
// file and returns the number of events written.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	out, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	written := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Close()
			return written, fmt.Errorf("failed to read event: %w", err)
		}
		out.Log(event)
		written++
	}
	return written, out.Close()
}
