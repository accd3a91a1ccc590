// Package profilers sets up profiling of the searches, configured by flags:
//
//   - -prof=<port>: serves net/http/pprof on localhost:<port> while the program runs.
//   - -cpu_profile=<file>: writes a CPU profile of the whole run.
//   - -mem_profile=<file>: writes a heap profile at the end of the run.
//
// Search processes spawned by the anytime player are killed at their deadline, so they never write their
// profiles: profile them with -anytime directly, with a bounded max_depth.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, serves the pprof profiler at the given port.")
	flagCPUProfile = flag.String("cpu_profile", "", "write cpu profile to `file`")
	flagMemProfile = flag.String("mem_profile", "", "write heap profile to `file` at the end of the program")
)

// Setup starts the HTTP (flag -prof) and CPU profilers (flag -cpu_profile), if they were configured.
// The returned function must be called before the program exits, typically deferred.
func Setup(ctx context.Context) (onQuit func()) {
	var stops []func()
	if *flagProfiler >= 0 {
		addr := fmt.Sprintf("localhost:%d", *flagProfiler)
		klog.Infof("Serving profiler on http://%s/debug/pprof", addr)
		server := &http.Server{Addr: addr}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				klog.Errorf("Profiler failed: %v", err)
			}
		}()
		stops = append(stops, func() { _ = server.Shutdown(ctx) })
	}
	if *flagCPUProfile != "" {
		stop, err := StartCPUProfile(*flagCPUProfile)
		if err != nil {
			klog.Fatalf("%+v", err)
		}
		stops = append(stops, stop)
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
		if *flagMemProfile != "" {
			if err := WriteHeapProfile(*flagMemProfile); err != nil {
				klog.Errorf("%+v", err)
			}
		}
	}
}

// StartCPUProfile creates filePath and starts the CPU profiling there. It returns the function that stops the
// profiling and closes the file.
func StartCPUProfile(filePath string) (stop func(), err error) {
	f, err := os.Create(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create CPU profile %q", filePath)
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "could not start CPU profile %q", filePath)
	}
	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			klog.Errorf("Failed to close CPU profile %q: %v", filePath, err)
		}
	}, nil
}

// WriteHeapProfile writes the current heap profile to filePath, after a garbage collection.
func WriteHeapProfile(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "could not create heap profile %q", filePath)
	}
	runtime.GC()
	if err = pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "could not write heap profile %q", filePath)
	}
	return errors.Wrapf(f.Close(), "could not close heap profile %q", filePath)
}
