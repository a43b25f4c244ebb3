// Package solver answers the two questions asked of a pairing-mode packet input.
//
// The first answer is the sum of the 1-based indices of the pairs that are
// already in order (left compares Less than right). The second is the decoder
// key: add the divider documents [[2]] and [[6]] to every document of the
// input, sort everything, and multiply the dividers' 1-based positions.
//
// # Basic Usage
//
//	pairs, err := parser.NewParser().ParsePairsFile("input.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := solver.New().Solve(ctx, pairs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.OrderedIndexSum, report.DecoderKey.Product)
//
// Custom dividers:
//
//	dividers, err := solver.ParseDividers(parser.NewParser(), []string{"[[3]]"})
//	s := solver.New(solver.WithDividers(dividers...))
package solver
