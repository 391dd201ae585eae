package profiling

import (
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/filetug/dirnav/pkg/logging"
)

var (
	memProfilingInterval  = 10 * time.Second
	pprofWriteHeapProfile = pprof.WriteHeapProfile
)

// DoMemProfiling rewrites a heap profile to fileName every memProfilingInterval
// for the life of the process. The returned func writes one on demand, e.g. at exit.
func DoMemProfiling(fileName string) func() {
	write := func() {
		log := logging.GetLogger("profiling")
		f, err := osCreate(fileName)
		if err != nil {
			log.Error().Err(err).Str("file", fileName).Msg("could not create memory profile")
			return
		}
		defer func() {
			_ = f.Close()
		}()
		runtime.GC()
		if err = pprofWriteHeapProfile(f); err != nil {
			log.Error().Err(err).Msg("could not write memory profile")
		}
	}
	interval := memProfilingInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			write()
		}
	}()
	return write
}
