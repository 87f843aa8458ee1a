package flight

// GateCount exposes the live gate-registry size to tests.
func GateCount(c *Coordinator) int {
	return c.gates.len()
}
