// Package fsrs implements the memory model behind review scheduling: an
// exponential forgetting curve parametrized by per-question stability and
// difficulty, with a multiplicative update rule applied after each review.
//
// Every method is a pure function of its arguments. The model never fails
// on inputs that respect the documented invariants (stability > 0,
// difficulty in [1,10], rating in 1..5, retention in (0,1)).
package fsrs

import "math"

// Decay is the fixed exponent of the forgetting curve.
const Decay = -0.4

// MinStability is the floor applied when a total failure penalizes stability.
const MinStability = 0.1

// Weights is the fixed 20-value parameter vector of the model.
type Weights [20]float64

// DefaultWeights are the reference parameter values.
//
// w[8] speeds up interval growth; raise it if mastered problems come back
// too often. w[10] is rejection sensitivity: lower it when retention goals
// are being missed. w[15] is the hard-rating penalty; lower means stricter.
var DefaultWeights = Weights{
	2.5, 2.6, 2.3, 2.8, 3.0, 0.8, 0.7, 0.5, 0.1, 0.1,
	0.1, 1.0, 0.5, 0.5, 1.0, 0.6, 1.2, 0.5, 0.7, 1.3,
}

// Model evaluates the memory-model formulas for a fixed weight vector.
type Model struct {
	w      Weights
	factor float64 // 0.9^(1/Decay) - 1, precomputed
}

// New builds a Model. A zero Weights value selects DefaultWeights.
func New(w Weights) Model {
	if w == (Weights{}) {
		w = DefaultWeights
	}
	return Model{w: w, factor: math.Pow(0.9, 1.0/Decay) - 1}
}

// InitialStability is the stability assigned to a freshly added question.
func (m Model) InitialStability() float64 { return m.w[0] }

// Retrievability computes R(t, S) = (1 + FACTOR*t/S)^DECAY, the predicted
// probability of successful recall t days after the last review.
func (m Model) Retrievability(elapsedDays, stability float64) float64 {
	return math.Pow(1+m.factor*elapsedDays/stability, Decay)
}

// NextInterval inverts the forgetting curve: the elapsed-day count at which
// predicted recall drops to the retention target, rounded and clamped to
// [1, maxInterval].
func (m Model) NextInterval(stability, retention float64, maxInterval int) int {
	ivl := stability / m.factor * (math.Pow(retention, 1.0/Decay) - 1)
	n := int(math.Round(ivl))
	if n < 1 {
		n = 1
	}
	if n > maxInterval {
		n = maxInterval
	}
	return n
}

// NextDifficulty shifts difficulty by the rating's distance from average
// (a 3 leaves it unchanged), mean-reverts toward 5.0 and clamps to [1, 10].
func (m Model) NextDifficulty(difficulty float64, rating int) float64 {
	next := difficulty - m.w[6]*float64(rating-3)
	next = m.meanReversion(5.0, next)
	return math.Min(math.Max(next, 1), 10)
}

// NextStability computes post-review stability for ratings 2-5. Lower
// difficulty and lower retrievability (a surprising success) both grow
// stability faster; a hard rating (2) is dampened by w[15].
//
// A rating of 1 must not be run through this formula: the caller applies
// the FailStability override instead.
func (m Model) NextStability(difficulty, stability, retrievability float64, rating int) float64 {
	penalty := 1.0
	if rating == 2 {
		penalty = m.w[15]
	}
	return stability * (1 +
		math.Exp(m.w[8])*
			(11-difficulty)*
			math.Pow(stability, -m.w[9])*
			(math.Exp((1-retrievability)*m.w[10])-1)) * penalty
}

// FailStability is the total-failure override: the model's computed
// stability is cut to 60%, floored at MinStability. The caller also forces
// the interval back to one day.
func FailStability(computed float64) float64 {
	return math.Max(computed*0.6, MinStability)
}

func (m Model) meanReversion(init, current float64) float64 {
	return m.w[7]*init + (1-m.w[7])*current
}
