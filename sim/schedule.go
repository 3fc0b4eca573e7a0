package sim

import "github.com/ring-sim/ring-sim/sim/trace"

// Schedule maps a cycle number to the open-loop plant inputs to apply at that
// cycle. Schedules are pure functions of the cycle, so a run can re-evaluate
// them freely and two runs over the same schedule see identical inputs.
//
// In closed-loop runs the controller owns the heater duty and only the
// workload (the disturbance) is taken from the schedule.
type Schedule func(cycle int64) trace.PlantInputs

// ConstantHeater holds the heater duty and workload fraction fixed.
func ConstantHeater(heater, workload float64) Schedule {
	return func(cycle int64) trace.PlantInputs {
		return trace.PlantInputs{
			HeaterDuty:   heater,
			WorkloadFrac: workload,
			DtS:          DefaultDtS,
		}
	}
}

// StepWorkload switches the workload from low to high at stepAtCycle, keeping
// the heater fixed. Useful for probing transient response.
func StepWorkload(heater, workloadLow, workloadHigh float64, stepAtCycle int64) Schedule {
	return func(cycle int64) trace.PlantInputs {
		workload := workloadLow
		if cycle >= stepAtCycle {
			workload = workloadHigh
		}
		return trace.PlantInputs{
			HeaterDuty:   heater,
			WorkloadFrac: workload,
			DtS:          DefaultDtS,
		}
	}
}

// RampWorkload interpolates the workload linearly from start to end over
// rampCycles, then holds it at end.
func RampWorkload(heater, workloadStart, workloadEnd float64, rampCycles int64) Schedule {
	return func(cycle int64) trace.PlantInputs {
		workload := workloadEnd
		if cycle < rampCycles {
			t := float64(cycle) / float64(rampCycles)
			workload = workloadStart + t*(workloadEnd-workloadStart)
		}
		return trace.PlantInputs{
			HeaterDuty:   heater,
			WorkloadFrac: workload,
			DtS:          DefaultDtS,
		}
	}
}

// HeaterOffWorkloadOn keeps the heater off under a fixed workload, which
// exercises cooling against a constant heat source.
func HeaterOffWorkloadOn(workload float64) Schedule {
	return func(cycle int64) trace.PlantInputs {
		return trace.PlantInputs{
			HeaterDuty:   0.0,
			WorkloadFrac: workload,
			DtS:          DefaultDtS,
		}
	}
}
