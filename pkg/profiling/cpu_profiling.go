package profiling

import (
	"os"
	"runtime/pprof"

	"github.com/filetug/dirnav/pkg/logging"
)

var (
	osCreate             = os.Create
	pprofStartCPUProfile = pprof.StartCPUProfile
	pprofStopCPUProfile  = pprof.StopCPUProfile
)

// DoCPUProfiling starts writing a CPU profile to fileName.
// The returned func stops profiling; it is never nil.
func DoCPUProfiling(fileName string) func() {
	log := logging.GetLogger("profiling")
	f, err := osCreate(fileName)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("could not create CPU profile")
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		log.Error().Err(err).Msg("could not start CPU profile")
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Str("file", fileName).Msg("failed to close CPU profile")
		}
	}
}
