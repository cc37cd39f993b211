package host

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/mnafees/c8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// StatsAddress is where the runtime statistics server listens
const StatsAddress = "localhost:12600"

const statsURL = "/debug/statsview"

// LaunchStatsview starts the runtime statistics server in a new goroutine
func LaunchStatsview(logger *log.Logger) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(StatsAddress))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Info("Stats server available",
		log.String("url", fmt.Sprintf("http://%s%s", StatsAddress, statsURL)))
}

// DumpState writes a graphviz dot graph of the machine state to filename
func DumpState(filename string, m *vm.Machine) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("memviz: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("memviz: %w", err)
		}
	}()

	memviz.Map(f, m)
	return nil
}
