/*
Package runner walks transition routes to completion.

An engine runs one transition per call. Walker repeats the calls until the route
is exhausted, in an explicit loop rather than through listener re-entry, so the
stack stays flat however long the route is.

# Usage

	w := runner.NewWalker[string, string](
		runner.WithDelay(100*time.Millisecond),
		runner.WithLogger(logger),
	)

	res, err := w.Walk(ctx, eng, path, listener)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Steps, "steps")
*/
package runner
