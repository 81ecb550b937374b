package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/usedhondacivic/mote/device/powergate"
	"github.com/usedhondacivic/mote/messages"
)

func TestCore1StartsLiDARAndDriveBaseInOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string

	record := func(name string) func(context.Context) {
		return func(context.Context) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	c1 := &Core1{
		StartUSBSerial: record("usb"),
		StartPowerGate: func(ctx context.Context) *powergate.Gate {
			record("powergate")(ctx)
			return powergate.NewGate()
		},
		StartLiDAR:     record("lidar"),
		StartDriveBase: record("drivebase"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go func() {
		for c1.Gate() == nil {
			time.Sleep(time.Millisecond)
		}
		c1.Gate().Set(messages.PowerMax1p5A)
		time.Sleep(10 * time.Millisecond)
		c1.Gate().Set(messages.PowerMax3A)
	}()

	err := c1.Run(ctx)
	if err != context.DeadlineExceeded {
		t.Fatalf("Run() error = %v, want DeadlineExceeded", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) < 3 {
		t.Fatalf("order = %v, want at least usb, lidar, drivebase", order)
	}
	idxLidar, idxDrive := -1, -1
	for i, n := range order {
		if n == "lidar" {
			idxLidar = i
		}
		if n == "drivebase" {
			idxDrive = i
		}
	}
	if idxLidar == -1 || idxDrive == -1 || idxLidar > idxDrive {
		t.Fatalf("order = %v, want lidar before drivebase", order)
	}
}

func TestCore0WaitsForGateBeforeEnablingRadio(t *testing.T) {
	gate := powergate.NewGate()
	radioEnabled := make(chan struct{})

	c0 := &Core0{
		Gate: gate,
		EnableRadio: func(ctx context.Context) error {
			close(radioEnabled)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { c0.Run(ctx) }()

	select {
	case <-radioEnabled:
		cancel()
		t.Fatal("radio enabled before gate reached 1.5A")
	case <-time.After(30 * time.Millisecond):
	}

	gate.Set(messages.PowerMax1p5A)

	select {
	case <-radioEnabled:
	case <-time.After(time.Second):
		t.Fatal("radio never enabled after gate reached 1.5A")
	}
	cancel()
}
