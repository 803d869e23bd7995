package dcor_test

import (
	"fmt"

	"github.com/nozzle/dcor"
	"github.com/nozzle/dcor/sample"
)

func ExampleCompute() {
	x, err := sample.FromRows([][]float64{
		{1, 2.0, 7},
		{2, 4.1, 1},
		{3, 5.9, 8},
		{4, 8.2, 2},
		{5, 9.8, 8},
		{6, 12.1, 1},
	})
	if err != nil {
		panic(err)
	}

	res, err := dcor.Compute(x, nil, dcor.DefaultConfig())
	if err != nil {
		panic(err)
	}
	r, c := res.DCor.Dims()
	fmt.Println(r, c)
	fmt.Println(res.DCor.At(0, 0), res.DCor.At(2, 2))
	fmt.Println(res.DCor.At(0, 1) > 0.95)
	// Output:
	// 3 3
	// 1 1
	// true
}

func ExampleCompute_groups() {
	x, err := sample.FromRows([][]float64{
		{1, 0, 3},
		{2, 1, 1},
		{3, 1, 4},
		{4, 0, 1},
		{5, 1, 5},
		{6, 0, 9},
	})
	if err != nil {
		panic(err)
	}

	cfg := dcor.DefaultConfig()
	cfg.GroupX = []string{"pos", "pos", "z"}
	cfg.MetricX = []string{"euclidean", "manhattan"}
	cfg.Test = "gamma"
	res, err := dcor.Compute(x, nil, cfg)
	if err != nil {
		panic(err)
	}
	fmt.Println(res.LabelsX, res.GroupsX)
	fmt.Println(res.MetricsX)
	fmt.Println(res.Algorithm, res.Test)
	// Output:
	// [pos z] [[0 1] [2]]
	// [euclidean manhattan]
	// standard gamma
}
