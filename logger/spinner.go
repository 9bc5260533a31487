package logger

import (
	"fmt"
	"time"
)

type Spinner struct {
	Frames  []string
	Message string
	Console *Console
	done    chan struct{}
	stopped chan struct{}
}

func (s *Spinner) Start() {
	if !s.Console.Interactive {
		close(s.stopped)
		return
	}

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			frame := s.Frames[i%len(s.Frames)]
			fmt.Fprintf(s.Console.Out, "\r%s %s ", frame, s.Message)

			select {
			case <-s.done:
				fmt.Fprint(s.Console.Out, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the animation and reports the outcome as a success or error line.
func (s *Spinner) Stop(success bool, message string) {
	close(s.done)
	<-s.stopped

	if message == "" {
		return
	}
	if success {
		s.Console.Success("%s", message)
	} else {
		s.Console.Error("%s", message)
	}
}
