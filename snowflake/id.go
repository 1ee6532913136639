package snowflake

import (
	"math/rand"
	"sync"
	"time"

	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ platform.IDGenerator = (*IDGenerator)(nil)

const (
	epoch       = 1491696000000 // 2017-04-09 in milliseconds since the unix epoch
	machineBits = 10
	seqBits     = 12
	machineMask = -1 ^ (-1 << machineBits)
	seqMask     = -1 ^ (-1 << seqBits)
)

// IDGenerator generates unique, roughly time-ordered IDs from a machine ID,
// a millisecond timestamp and a per-millisecond sequence number.
type IDGenerator struct {
	mu        sync.Mutex
	machineID uint64
	lastTime  int64
	sequence  uint64
}

// IDGeneratorOp is an option for an IDGenerator.
type IDGeneratorOp func(*IDGenerator)

// WithMachineID uses the low 10 bits of machineID to set the machine ID for the generated IDs.
func WithMachineID(machineID int) IDGeneratorOp {
	return func(g *IDGenerator) {
		g.machineID = uint64(machineID & machineMask)
	}
}

// NewIDGenerator returns a new IDGenerator. By default the machine ID is random.
func NewIDGenerator(opts ...IDGeneratorOp) *IDGenerator {
	gen := &IDGenerator{
		machineID: uint64(rand.Intn(machineMask)),
	}
	for _, f := range opts {
		f(gen)
	}
	return gen
}

// ID returns the next unique ID.
func (g *IDGenerator) ID() platform.ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		now := time.Now().UnixMilli()
		if now < g.lastTime {
			// clock went backwards, wait it out
			time.Sleep(time.Duration(g.lastTime-now) * time.Millisecond)
			continue
		}

		if now == g.lastTime {
			g.sequence = (g.sequence + 1) & seqMask
			if g.sequence == 0 {
				// sequence exhausted for this millisecond
				time.Sleep(time.Millisecond)
				continue
			}
		} else {
			g.sequence = 0
		}
		g.lastTime = now

		id := uint64(now-epoch)<<(machineBits+seqBits) |
			g.machineID<<seqBits |
			g.sequence
		if id == 0 {
			continue
		}
		return platform.ID(id)
	}
}
