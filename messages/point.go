package messages

// MaxPointsPerScanMessage bounds a single Scan batch (§3).
const MaxPointsPerScanMessage = 250

// Point is one LiDAR sample as carried on the wire. Angle and Distance are
// the raw quantized units the sensor reports; ActualHeadingDeg and
// ActualDistanceMM convert them to physical units per §3/§4.4.
type Point struct {
	Quality  uint8
	Angle    uint16 // actual heading = Angle/64 degrees
	Distance uint16 // actual distance = Distance/4 mm
}

// ActualHeadingDeg returns the point's heading in degrees.
func (p Point) ActualHeadingDeg() float64 { return float64(p.Angle) / 64.0 }

// ActualDistanceMM returns the point's distance in millimetres.
func (p Point) ActualDistanceMM() float64 { return float64(p.Distance) / 4.0 }
