package lidar

import (
	"context"
	"time"

	"github.com/usedhondacivic/mote/bus"
	"github.com/usedhondacivic/mote/device/bit"
	"github.com/usedhondacivic/mote/device/hal"
	"github.com/usedhondacivic/mote/messages"
)

// MaxPointsPerScan is the fixed batch size ReceiveSample reads and
// ProcessSample emits (§3, §4.4).
const MaxPointsPerScan = messages.MaxPointsPerScanMessage

const (
	sampleReadTimeout = 5 * time.Second
	quietDrainTimeout = 200 * time.Millisecond
	resetSettleDelay  = time.Second
	retryDelay        = time.Second
)

type state int

const (
	stateReset state = iota
	stateCheckHealth
	stateScanRequest
	stateReceiveSample
)

// StateMachine drives the sensor through Idle → Reset → CheckHealth →
// ScanRequest → ReceiveSample → ProcessSample → ReceiveSample … (§4.4).
// It is self-healing: every I/O failure routes back to CheckHealth or
// Reset, and Run never returns on its own.
type StateMachine struct {
	port  hal.SerialPort
	conn  *bus.Connection
	scans chan<- messages.Scan
}

// NewStateMachine builds a StateMachine driving port, reporting BIT
// results over conn, and delivering completed batches to scans via
// non-blocking send (§5: producers try-send and drop on full).
func NewStateMachine(port hal.SerialPort, conn *bus.Connection, scans chan<- messages.Scan) *StateMachine {
	return &StateMachine{port: port, conn: conn, scans: scans}
}

// Run drives the state machine until ctx is cancelled.
func (m *StateMachine) Run(ctx context.Context) {
	bit.Report(m.conn, "lidar", "Init", messages.BITPass)

	st := stateReset
	for {
		if ctx.Err() != nil {
			return
		}
		switch st {
		case stateReset:
			st = m.reset(ctx)
		case stateCheckHealth:
			st = m.checkHealth(ctx)
		case stateScanRequest:
			st = m.scanRequest(ctx)
		case stateReceiveSample:
			st = m.receiveSample(ctx)
		}
	}
}

func (m *StateMachine) reset(ctx context.Context) state {
	if _, err := m.port.Write(cmdReset); err != nil {
		sleepCtx(ctx, retryDelay)
		return stateReset
	}
	sleepCtx(ctx, resetSettleDelay)
	hal.QuietDrain(ctx, m.port, quietDrainTimeout)
	return stateCheckHealth
}

func (m *StateMachine) checkHealth(ctx context.Context) state {
	if _, err := m.port.Write(cmdCheckHealth); err != nil {
		return stateReset
	}
	var resp [healthResponseLen]byte
	rctx, cancel := context.WithTimeout(ctx, sampleReadTimeout)
	err := hal.ReadFull(rctx, m.port, resp[:])
	cancel()
	if err != nil {
		return stateReset
	}
	for i, b := range healthHeader {
		if resp[i] != b {
			return stateReset
		}
	}
	status := resp[7]
	if status != 0 {
		bit.Report(m.conn, "lidar", "Check Health", messages.BITFail)
		return stateReset
	}
	bit.Report(m.conn, "lidar", "Check Health", messages.BITPass)
	return stateScanRequest
}

func (m *StateMachine) scanRequest(ctx context.Context) state {
	if _, err := m.port.Write(cmdScanRequest); err != nil {
		return stateCheckHealth
	}
	var resp [7]byte
	rctx, cancel := context.WithTimeout(ctx, sampleReadTimeout)
	err := hal.ReadFull(rctx, m.port, resp[:])
	cancel()
	if err != nil {
		return stateCheckHealth
	}
	if resp != scanAckResponse {
		return stateCheckHealth
	}
	return stateReceiveSample
}

func (m *StateMachine) receiveSample(ctx context.Context) state {
	buf := make([]byte, 5*MaxPointsPerScan)
	rctx, cancel := context.WithTimeout(ctx, sampleReadTimeout)
	err := hal.ReadFull(rctx, m.port, buf)
	cancel()
	if err != nil {
		return stateCheckHealth
	}

	points := make([]messages.Point, 0, MaxPointsPerScan)
	for i := 0; i < MaxPointsPerScan; i++ {
		var rec [5]byte
		copy(rec[:], buf[i*5:i*5+5])
		p, ok := decodeSample(rec)
		if !ok {
			continue
		}
		points = append(points, p)
	}

	if len(points) < MaxPointsPerScan/2 {
		return stateCheckHealth
	}

	m.processSample(points)
	return stateReceiveSample
}

// processSample attempts a non-blocking enqueue of the batch; a full
// queue drops it, trading completeness for freshness (§4.4).
func (m *StateMachine) processSample(points []messages.Point) {
	select {
	case m.scans <- messages.Scan{Points: points}:
	default:
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
