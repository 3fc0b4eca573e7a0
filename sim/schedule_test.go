package sim

import "testing"

func TestConstantHeater_SameInputsAtEveryCycle(t *testing.T) {
	sched := ConstantHeater(0.5, 0.3)

	for _, cycle := range []int64{0, 1, 50, 1000000} {
		in := sched(cycle)
		if in.HeaterDuty != 0.5 || in.WorkloadFrac != 0.3 {
			t.Errorf("cycle %d: got heater %v workload %v, want 0.5 and 0.3", cycle, in.HeaterDuty, in.WorkloadFrac)
		}
		if in.DtS != DefaultDtS {
			t.Errorf("cycle %d: got dt %v, want the default %v", cycle, in.DtS, DefaultDtS)
		}
	}
}

func TestStepWorkload_SwitchesExactlyAtStepCycle(t *testing.T) {
	sched := StepWorkload(0.1, 0.0, 1.0, 50)

	cases := []struct {
		cycle int64
		want  float64
	}{
		{0, 0.0},
		{49, 0.0},
		{50, 1.0},
		{51, 1.0},
		{100, 1.0},
	}
	for _, tc := range cases {
		in := sched(tc.cycle)
		if in.WorkloadFrac != tc.want {
			t.Errorf("cycle %d: got workload %v, want %v", tc.cycle, in.WorkloadFrac, tc.want)
		}
		if in.HeaterDuty != 0.1 {
			t.Errorf("cycle %d: heater should stay fixed at 0.1, got %v", tc.cycle, in.HeaterDuty)
		}
	}
}

func TestRampWorkload_InterpolatesLinearlyThenHolds(t *testing.T) {
	sched := RampWorkload(0.0, 0.0, 1.0, 100)

	cases := []struct {
		cycle int64
		want  float64
	}{
		{0, 0.0},
		{25, 0.25},
		{50, 0.5},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tc := range cases {
		if got := sched(tc.cycle).WorkloadFrac; got != tc.want {
			t.Errorf("cycle %d: got workload %v, want %v", tc.cycle, got, tc.want)
		}
	}
}

func TestRampWorkload_ZeroRampJumpsToEnd(t *testing.T) {
	sched := RampWorkload(0.0, 0.2, 0.8, 0)

	if got := sched(0).WorkloadFrac; got != 0.8 {
		t.Errorf("got workload %v, want the end value 0.8", got)
	}
}

func TestHeaterOffWorkloadOn_HeaterAlwaysZero(t *testing.T) {
	sched := HeaterOffWorkloadOn(0.5)

	in := sched(123)
	if in.HeaterDuty != 0.0 {
		t.Errorf("got heater %v, want 0", in.HeaterDuty)
	}
	if in.WorkloadFrac != 0.5 {
		t.Errorf("got workload %v, want 0.5", in.WorkloadFrac)
	}
}
