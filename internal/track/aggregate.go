package track

import "math"

// Extremum is a min or max value and the index of the point that holds it.
// Index is -1 when no point qualified.
type Extremum struct {
	Value float64
	Index int
}

func (e Extremum) Valid() bool { return e.Index >= 0 }

func (e *Extremum) takeMax(v float64, i int) {
	if e.Index < 0 || v > e.Value {
		e.Value, e.Index = v, i
	}
}

func (e *Extremum) takeMin(v float64, i int) {
	if e.Index < 0 || v < e.Value {
		e.Value, e.Index = v, i
	}
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) { m.sum += v; m.n++ }

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

// Aggregates holds the activity-wide statistics rebuilt by
// RecomputeAggregates after every mutation.
type Aggregates struct {
	MinSpeed, MaxSpeed   Extremum
	MinElev, MaxElev     Extremum
	MinGrade, MaxGrade   Extremum
	MinDeltaD, MaxDeltaD Extremum
	MinDeltaT, MaxDeltaT Extremum
	MaxDeltaG            Extremum

	MinHeartRate, MaxHeartRate Extremum
	MinCadence, MaxCadence     Extremum
	MinPower, MaxPower         Extremum
	MinTemp, MaxTemp           Extremum

	ElevGain    float64
	ElevLoss    float64
	GradeSum    float64 // sum of the grades, for the average
	StoppedTime float64 // time spent with speed 0

	AvgHeartRate float64
	AvgCadence   float64
	AvgPower     float64
	AvgTemp      float64
}

func newAggregates() Aggregates {
	var agg Aggregates
	for _, e := range []*Extremum{
		&agg.MinSpeed, &agg.MaxSpeed,
		&agg.MinElev, &agg.MaxElev,
		&agg.MinGrade, &agg.MaxGrade,
		&agg.MinDeltaD, &agg.MaxDeltaD,
		&agg.MinDeltaT, &agg.MaxDeltaT,
		&agg.MaxDeltaG,
		&agg.MinHeartRate, &agg.MaxHeartRate,
		&agg.MinCadence, &agg.MaxCadence,
		&agg.MinPower, &agg.MaxPower,
		&agg.MinTemp, &agg.MaxTemp,
	} {
		e.Index = -1
	}
	return agg
}

// RecomputeAggregates rebuilds min/max/average values and the rolling sums
// in one full pass. It also refreshes each point's DeltaG, since grade edits
// only rerun this pass.
func (t *Track) RecomputeAggregates() {
	agg := newAggregates()
	var hr, cad, pwr, temp mean

	for i := range t.points {
		p := &t.points[i]

		if p.HasElevation() {
			agg.MaxElev.takeMax(p.Elevation, i)
			agg.MinElev.takeMin(p.Elevation, i)
		}
		if p.HasSpeed() {
			agg.MaxSpeed.takeMax(p.Speed, i)
			agg.MinSpeed.takeMin(p.Speed, i)
		}
		if p.Grade != NilGrade {
			agg.MaxGrade.takeMax(p.Grade, i)
			agg.MinGrade.takeMin(p.Grade, i)
		}

		if t.SensorMask&SensorHeartRate != 0 && p.HeartRate > 0 {
			agg.MaxHeartRate.takeMax(float64(p.HeartRate), i)
			agg.MinHeartRate.takeMin(float64(p.HeartRate), i)
			hr.add(float64(p.HeartRate))
		}
		if t.SensorMask&SensorCadence != 0 && p.Cadence > 0 {
			agg.MaxCadence.takeMax(float64(p.Cadence), i)
			agg.MinCadence.takeMin(float64(p.Cadence), i)
			cad.add(float64(p.Cadence))
		}
		if t.SensorMask&SensorPower != 0 {
			agg.MaxPower.takeMax(float64(p.Power), i)
			agg.MinPower.takeMin(float64(p.Power), i)
			pwr.add(float64(p.Power))
		}
		if t.SensorMask&SensorAmbTemp != 0 {
			agg.MaxTemp.takeMax(float64(p.AmbTemp), i)
			agg.MinTemp.takeMin(float64(p.AmbTemp), i)
			temp.add(float64(p.AmbTemp))
		}

		if i == 0 {
			continue
		}
		prev := &t.points[i-1]

		agg.MaxDeltaD.takeMax(p.Dist, i)
		agg.MinDeltaD.takeMin(p.Dist, i)
		agg.MaxDeltaT.takeMax(p.DeltaT, i)
		agg.MinDeltaT.takeMin(p.DeltaT, i)

		p.DeltaG = math.Abs(p.Grade - prev.Grade)
		agg.MaxDeltaG.takeMax(p.DeltaG, i)

		if p.Rise >= 0 {
			agg.ElevGain += p.Rise
		} else {
			agg.ElevLoss -= p.Rise
		}
		agg.GradeSum += p.Grade

		if p.Speed == 0 {
			agg.StoppedTime += p.DeltaT
		}
	}

	agg.AvgHeartRate = hr.value()
	agg.AvgCadence = cad.value()
	agg.AvgPower = pwr.value()
	agg.AvgTemp = temp.value()

	t.Agg = agg
}

// AvgGrade is the mean grade over all points after the baseline.
func (t *Track) AvgGrade() float64 {
	if len(t.points) < 2 {
		return 0
	}
	return t.Agg.GradeSum / float64(len(t.points)-1)
}

// AvgSpeed is the total distance over the total time, in m/s.
func (t *Track) AvgSpeed() float64 {
	if t.Time <= 0 {
		return 0
	}
	return t.Distance / t.Time
}

// MovingTime is the total time minus the time spent stopped.
func (t *Track) MovingTime() float64 {
	return t.Time - t.Agg.StoppedTime
}
