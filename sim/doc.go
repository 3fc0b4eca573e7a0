// Package sim provides the closed-loop thermal co-simulation engine for a
// wavelength-locked photonic resonator link.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - thermal.go: Forward-Euler integration of the heater/workload RC network
//   - plant.go: The composed plant (thermal node → resonator optics → CRC impairment)
//   - simulator.go: The chunked kernel that alternates plant steps, controller
//     updates, CRC event sampling, and link monitoring
//
// # Architecture
//
// The sim package owns the plant, the controllers, and the kernel;
// sub-packages hold everything that consumes the run:
//   - sim/trace/: Pure record types (samples, events, link states) plus
//     aggregate summaries
//   - sim/link/: The CRC-driven link state machine with hysteresis
//   - sim/rtl/: Replay of recorded events through an external RTL harness and
//     sample-by-sample comparison against the recorded link states
//
// # Operating Modes
//
// A run is in exactly one mode, decided at construction:
//   - baseline: no schedule and no controller; time advances, the plant never steps
//   - open loop: a Schedule supplies heater duty and workload each chunk
//   - closed loop: a Controller supplies the heater duty from the previous
//     chunk's detune; the schedule, when present, still supplies the workload
//
// Each chunk performs one plant step, samples one CRC event from the resulting
// failure probability, and feeds that event to the link monitor. All
// randomness flows from the run seed through PartitionedRNG, so a seed pins
// every record of the run.
package sim
