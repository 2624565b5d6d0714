package rkf45

// Classical Fehlberg 4(5) tableau (the RKFB4 pair), not Dormand-Prince:
// 6 stages, embedded 4th/5th order solutions sharing the first function
// evaluation of each step.
const (
	numStages = 6
	order     = 4
)

var rkA = [numStages][numStages]float64{
	{},
	{1.0 / 4},
	{3.0 / 32.0, 9.0 / 32.0},
	{1932.0 / 2197.0, -7200.0 / 2197.0, 7296.0 / 2197.0},
	{439.0 / 216.0, -8.0, 3680.0 / 513.0, -845.0 / 4104.0},
	{-8.0 / 27.0, 2.0, -3544.0 / 2565.0, 1859.0 / 4104.0, -11.0 / 40.0},
}

var rkC = [numStages]float64{
	0.0,
	1.0 / 4.0,
	3.0 / 8.0,
	12.0 / 13.0,
	1.0,
	1.0 / 2.0,
}

// rkB is the 4th-order solution weights (the one actually advanced).
var rkB = [numStages]float64{
	25.0 / 216.0,
	0.0,
	1408.0 / 2565.0,
	2197.0 / 4104.0,
	-1.0 / 5.0,
	0.0,
}

// rkE is B5 - B4, the embedded error estimator (5th order minus 4th).
var rkE = [numStages]float64{
	16.0/135.0 - 25.0/216.0,
	0.0,
	6656.0/12825.0 - 1408.0/2565.0,
	28561.0/56430.0 - 2197.0/4104.0,
	-9.0/50.0 - (-1.0 / 5.0),
	2.0 / 55.0,
}
